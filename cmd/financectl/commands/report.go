package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		userID string
		year   int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Gera o relatório anual em PDF de um usuário",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			pdf, filename, err := svc.dashboard.AnnualReportPDF(cmd.Context(), userID, year)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "relatório gravado em %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "id do usuário")
	cmd.Flags().IntVar(&year, "year", 0, "ano do relatório (0 = ano corrente)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "arquivo de saída (padrão relatorio-<ano>.pdf)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
