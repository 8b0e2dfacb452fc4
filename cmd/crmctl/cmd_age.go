package main

import (
	"fmt"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/model"
	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
	"github.com/spf13/cobra"
)

func newAgeCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "age <YYYY-MM-DD>",
		Short: "생년월일 기준 만 나이 계산",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now()
			if asOf != "" {
				t, err := model.ParseBirthday(asOf)
				if err != nil {
					return fmt.Errorf("--today 형식 오류 (YYYY-MM-DD): %w", err)
				}
				today = t
			}

			if !validator.IsValidBirthday(args[0], today) {
				return fmt.Errorf("생년월일은 1900-01-01 이후, 오늘 이전의 YYYY-MM-DD 형식이어야 합니다: %q", args[0])
			}
			birthday, err := model.ParseBirthday(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), model.CalculateAge(birthday, today))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "today", "", "Reference date instead of today (YYYY-MM-DD)")
	return cmd
}
