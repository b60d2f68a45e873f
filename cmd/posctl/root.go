package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "posctl",
	Short: "Herramientas de operación del Punto de Venta",
	Long: `posctl aplica el esquema de base de datos, crea la empresa inicial con su
administrador e imprime estados de cuenta de clientes y proveedores.

Lee la misma configuración que la API (.env, config/config.env y variables de entorno).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute punto de entrada del CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig carga la configuración y el logger para los subcomandos.
func loadConfig(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := "warn"
	if verbose {
		level = "debug"
	}
	return cfg, logger.New(logger.Config{Env: "development", Level: level}), nil
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log detallado")
}
