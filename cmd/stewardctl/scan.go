// ABOUTME: This file implements the steward scanner commands
// ABOUTME: Ticket verdicts print as colored OK/FAIL lines at the door

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TeBabaEvent/eventclient/models"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Validate tickets and follow scan progress",
}

var scanValidateCmd = &cobra.Command{
	Use:   "validate <qr-data>",
	Short: "Validate one scanned ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanValidate,
}

var scanStatsCmd = &cobra.Command{
	Use:   "stats <event-id>",
	Short: "Show scan progress for an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanStats,
}

var scanHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scans",
	Args:  cobra.NoArgs,
	RunE:  runScanHistory,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.AddCommand(scanValidateCmd, scanStatsCmd, scanHistoryCmd)

	scanValidateCmd.Flags().String("event", "", "expected event id, cross-checked against the ticket")
	scanHistoryCmd.Flags().String("event", "", "limit history to one event")
}

func runScanValidate(cmd *cobra.Command, args []string) error {
	eventID, _ := cmd.Flags().GetString("event")

	result, err := scannerSvc.ValidateTicket(context.Background(), models.ScanRequest{
		QRData:  args[0],
		EventID: eventID,
	})
	if err != nil {
		if errors.Is(err, models.ErrAuthExpired) {
			failColor.Fprintln(os.Stderr, "Session expired, sign in again with: stewardctl login")
			os.Exit(1)
		}
		return err
	}

	if result.Valid {
		okColor.Printf("OK  %s", result.Holder)
		if result.PackName != "" {
			fmt.Printf("  (%s)", result.PackName)
		}
		fmt.Println()
		return nil
	}

	failColor.Printf("FAIL  %s", result.Result)
	if result.Message != "" {
		fmt.Printf("  %s", result.Message)
	}
	fmt.Println()
	// A rejected ticket is an unsuccessful door check even though the
	// request itself worked.
	os.Exit(2)
	return nil
}

func runScanStats(cmd *cobra.Command, args []string) error {
	stats, err := scannerSvc.Stats(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", stats.EventName)
	fmt.Printf("  Scanned: %d/%d (%.1f%%)\n", stats.ScannedTickets, stats.TotalTickets, stats.ScanRate*100)
	fmt.Printf("  Success: %d  Already used: %d  Invalid: %d\n",
		stats.SuccessCount, stats.AlreadyUsedCount, stats.InvalidCount)
	return nil
}

func runScanHistory(cmd *cobra.Command, args []string) error {
	eventID, _ := cmd.Flags().GetString("event")

	history, err := scannerSvc.History(context.Background(), eventID)
	if err != nil {
		return err
	}

	table := newTable(os.Stdout, []string{"Time", "Result", "Holder", "Event", "Steward"})
	for _, s := range history.Scans {
		table.Append([]string{s.ScannedAt, string(s.Result), s.Holder, s.EventName, s.StewardName})
	}
	table.Render()
	fmt.Fprintf(os.Stderr, "%s scans total\n", strconv.Itoa(history.Total))
	return nil
}
