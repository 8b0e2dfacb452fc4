package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "CSV 파일의 고객을 한 행씩 등록",
		Long: `Reads columns by header name; name and birthday are required.
customer_id and age columns are ignored and derived again.
Duplicates and invalid rows are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("파일 열기 실패: %w", err)
			}
			defer f.Close()

			s, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.service.Import(ctx, s.ownerID, f)
			if result != nil {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "total=%d imported=%d duplicates=%d failed=%d\n",
					result.Total, result.Imported, len(result.Duplicates), len(result.Failed))
				for _, name := range result.Duplicates {
					fmt.Fprintf(out, "duplicate\t%s\n", name)
				}
				for _, row := range result.Failed {
					fmt.Fprintf(out, "failed\trow=%d\t%s\t%s\n", row.Row, row.Name, row.Reason)
				}
			}
			return err
		},
	}
}
