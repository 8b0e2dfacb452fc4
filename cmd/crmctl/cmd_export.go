package main

import (
	"fmt"
	"io"
	"os"

	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "고객 목록을 CSV로 내보내기",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("파일 생성 실패: %w", err)
				}
				defer f.Close()
				w = f
			}

			n, err := s.service.Export(ctx, s.ownerID, w)
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Info("내보내기 완료", "rows", n, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
