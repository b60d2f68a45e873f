package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/storage"
	"github.com/jhoicas/PuntoVenta-api/pkg/money"
)

var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Imprime el estado de cuenta de un cliente o proveedor",
	Example: `  posctl statement --company 6f1c... --customer 9a2e...
  posctl statement --company 6f1c... --supplier 1b7d... --from 2026-01-01 --to 2026-03-31`,
	RunE: runStatement,
}

func init() {
	rootCmd.AddCommand(statementCmd)

	statementCmd.Flags().String("company", "", "ID de la empresa")
	statementCmd.Flags().String("customer", "", "ID del cliente")
	statementCmd.Flags().String("supplier", "", "ID del proveedor")
	statementCmd.Flags().String("from", "", "Desde (AAAA-MM-DD); lo anterior se acumula como saldo anterior")
	statementCmd.Flags().String("to", "", "Hasta (AAAA-MM-DD)")
	_ = statementCmd.MarkFlagRequired("company")
	statementCmd.MarkFlagsMutuallyExclusive("customer", "supplier")
	statementCmd.MarkFlagsOneRequired("customer", "supplier")
}

func runStatement(cmd *cobra.Command, _ []string) error {
	companyID, _ := cmd.Flags().GetString("company")
	customerID, _ := cmd.Flags().GetString("customer")
	supplierID, _ := cmd.Flags().GetString("supplier")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	from, err := parseDateFlag(fromStr, false)
	if err != nil {
		return err
	}
	to, err := parseDateFlag(toStr, true)
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	backend, err := storage.Open(ctx, cfg, log.WithComponent("storage").Zerolog(), false)
	if err != nil {
		return err
	}
	defer backend.Close()

	r := backend.Repos
	uc := ledger.NewStatementUseCase(r.Customers, r.Suppliers, r.Sales, r.Purchases, r.Payments, backend.Companies, nil)
	var st *dto.StatementResponse
	if customerID != "" {
		st, err = uc.CustomerStatement(ctx, companyID, customerID, from, to)
	} else {
		st, err = uc.SupplierStatement(ctx, companyID, supplierID, from, to)
	}
	if err != nil {
		return err
	}
	return printStatement(cmd.OutOrStdout(), st)
}

// printStatement tabla del estado de cuenta con el saldo después de cada fila.
func printStatement(out io.Writer, st *dto.StatementResponse) error {
	fmt.Fprintf(out, "%s (%s)\n", st.PartyName, st.PartyType)
	fmt.Fprintf(out, "Saldo anterior: %s\n\n", money.Plain(st.OpeningBalance))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Fecha\tReferencia\tDescripción\tDebe\tHaber\tSaldo\t")
	for _, e := range st.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			e.Date.Format(time.DateOnly), e.Reference, e.Description,
			blankIfZero(e.Debit.IsZero(), money.Plain(e.Debit)),
			blankIfZero(e.Credit.IsZero(), money.Plain(e.Credit)),
			money.Plain(e.Balance))
	}
	fmt.Fprintf(w, "\t\tTotales\t%s\t%s\t%s\t\n",
		money.Plain(st.TotalDebit), money.Plain(st.TotalCredit), money.Plain(st.ClosingBalance))
	return w.Flush()
}

func blankIfZero(zero bool, s string) string {
	if zero {
		return ""
	}
	return s
}

func parseDateFlag(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q, use AAAA-MM-DD: %w", s, err)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
