package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea la empresa inicial con los roles base y el usuario administrador",
	Long: `Crea una empresa, los roles Administrador (todos los permisos) y Cajero, y el usuario
administrador. Los valores por defecto vienen de SEED_COMPANY_NAME, SEED_ADMIN_EMAIL y
SEED_ADMIN_PASSWORD; los flags tienen prioridad.`,
	Example: `  posctl seed --company "Tienda Central" --email admin@tienda.co --password 'clave-larga'`,
	RunE:    runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("company", "", "Nombre de la empresa")
	seedCmd.Flags().String("email", "", "Email del administrador")
	seedCmd.Flags().String("password", "", "Password del administrador (mínimo 8 caracteres)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	company, email, password := cfg.Seed.CompanyName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword
	if v, _ := cmd.Flags().GetString("company"); v != "" {
		company = v
	}
	if v, _ := cmd.Flags().GetString("email"); v != "" {
		email = v
	}
	if v, _ := cmd.Flags().GetString("password"); v != "" {
		password = v
	}

	ctx := cmd.Context()
	backend, err := storage.Open(ctx, cfg, log.WithComponent("storage").Zerolog(), true)
	if err != nil {
		return err
	}
	defer backend.Close()

	uc := auth.NewAuthUseCase(backend.Users, backend.Roles, backend.Companies, auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})
	res, err := uc.Bootstrap(ctx, company, email, password)
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return fmt.Errorf("ya existe un usuario con el email %s", email)
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "empresa:        %s (%s)\n", company, res.CompanyID)
	fmt.Fprintf(out, "rol admin:      %s\n", res.RoleID)
	fmt.Fprintf(out, "administrador:  %s (%s)\n", email, res.UserID)
	return nil
}
