package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Financeiro-api/internal/application/importer"
)

func importCmd() *cobra.Command {
	var (
		userID  string
		file    string
		preview bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa uma planilha (.xlsx ou .csv) de lançamentos para um usuário",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			if preview {
				// Preview não grava: dispensa a conexão com o banco.
				res, err := importer.NewUseCase(nil).Preview(filepath.Base(file), f)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DATA\tDESCRIÇÃO\tVALOR\tCATEGORIA\tSTATUS")
				for _, r := range res.Rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Date, r.Description, r.Amount.StringFixed(2), r.CategoryName, r.Status)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d linhas válidas\n", res.Count)
				return nil
			}

			svc, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			res, err := svc.importer.Import(cmd.Context(), userID, filepath.Base(file), f)
			if err != nil {
				return err
			}
			log.Debug().Str("user_id", userID).Int("inserted", res.Inserted).Msg("importação concluída")
			fmt.Fprintf(cmd.OutOrStdout(), "%d lançamentos importados\n", res.Inserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "id do usuário dono dos lançamentos")
	cmd.Flags().StringVarP(&file, "file", "f", "", "caminho da planilha")
	cmd.Flags().BoolVar(&preview, "preview", false, "apenas valida e mostra as linhas, sem gravar")
	_ = cmd.MarkFlagRequired("file")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !preview && userID == "" {
			return fmt.Errorf("--user é obrigatório fora do modo --preview")
		}
		return nil
	}
	return cmd
}
