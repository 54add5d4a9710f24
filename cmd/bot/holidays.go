package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/config"
	"github.com/ykvlv/birthday-bot/internal/holidays"
)

func newHolidaysCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Print holidays from the calendar API for today (or --date)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				var err error
				if day, err = time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}

			hc, err := config.LoadHolidays()
			if err != nil {
				return err
			}

			names, err := holidays.NewClient(hc.Base, hc.Timeout, zap.NewNop()).Fetch(cmd.Context(), day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				_, _ = fmt.Fprintf(out, "no holidays on %s\n", day.Format("2006-01-02"))
				return nil
			}
			for _, n := range names {
				_, _ = fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to look up, YYYY-MM-DD")
	return cmd
}
