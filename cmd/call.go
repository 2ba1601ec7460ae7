package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var callParams string

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one tool and print the rendered report",
	Long:  "Runs a single tool call without the HTTP server, e.g.\n  joblens call search-jobs --params '{\"query\":\"senior ml engineer\",\"limit\":5}'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dispatcher, err := buildDispatcher(cfg)
		if err != nil {
			return err
		}

		params := map[string]any{}
		if strings.TrimSpace(callParams) != "" {
			if err := json.Unmarshal([]byte(callParams), &params); err != nil {
				return eris.Wrap(err, "call: parse params")
			}
		}

		report, err := dispatcher.Dispatch(ctx, args[0], params)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	callCmd.Flags().StringVar(&callParams, "params", "", "tool parameters as a JSON object")
	rootCmd.AddCommand(callCmd)
}
