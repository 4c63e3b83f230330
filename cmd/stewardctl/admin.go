// ABOUTME: This file implements the admin dashboard and image commands
// ABOUTME: These require an admin session established via login

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TeBabaEvent/eventclient/service"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin dashboard data and image management",
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats [event-id]",
	Short: "Show global stats, or one event's breakdown",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdminStats,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminUploadImageCmd = &cobra.Command{
	Use:   "upload-image <event-id> <file>",
	Short: "Replace an event's image",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminUploadImage,
}

var adminMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show client-side cache and request counters",
	Args:  cobra.NoArgs,
	RunE:  runAdminMetrics,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminStatsCmd, adminUsersCmd, adminUploadImageCmd, adminMetricsCmd)

	adminStatsCmd.Flags().Bool("refresh", false, "bypass the cache")
}

func requireAdmin() error {
	if !sessionSvc.CheckAuth(context.Background()) || !sessionSvc.IsAdmin() {
		return fmt.Errorf("admin access required, sign in with: stewardctl login")
	}
	return nil
}

func runAdminStats(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	refresh, _ := cmd.Flags().GetBool("refresh")

	if len(args) == 1 {
		stats, err := adminSvc.EventStats(context.Background(), args[0], refresh)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", stats.EventTitle)
		fmt.Printf("  Orders:   %d\n", stats.TotalOrders)
		fmt.Printf("  Revenue:  %.2f\n", stats.TotalRevenue)
		fmt.Printf("  Scanned:  %d/%d (%.1f%%)\n", stats.TicketsScanned, stats.TicketsSold, stats.ScanRate*100)
		for _, pack := range stats.SalesByPack {
			fmt.Printf("  %-20s %d tickets  %.2f\n", pack.PackName, pack.Tickets, pack.Revenue)
		}
		return nil
	}

	stats, err := adminSvc.GlobalStats(context.Background(), refresh)
	if err != nil {
		return err
	}
	fmt.Printf("Revenue:  %.2f\n", stats.TotalRevenue)
	fmt.Printf("Orders:   %d (%d completed, %d pending, %d failed)\n",
		stats.TotalOrders, stats.CompletedOrders, stats.PendingOrders, stats.FailedOrders)
	fmt.Printf("Tickets:  %d sold, %d scanned (%.1f%%)\n",
		stats.TicketsSold, stats.TicketsScanned, stats.ScanRate*100)

	if len(stats.TopEvents) > 0 {
		table := newTable(os.Stdout, []string{"Event", "Date", "Revenue", "Tickets"})
		for _, e := range stats.TopEvents {
			table.Append([]string{e.EventTitle, e.EventDate, fmt.Sprintf("%.2f", e.Revenue), strconv.Itoa(e.TicketsSold)})
		}
		table.Render()
	}
	return nil
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	users, err := adminSvc.Users(context.Background(), false)
	if err != nil {
		return err
	}

	table := newTable(os.Stdout, []string{"ID", "Email", "Role", "Active"})
	for _, u := range users {
		table.Append([]string{u.ID, u.Email, string(u.Role), strconv.FormatBool(u.IsActive)})
	}
	table.Render()
	return nil
}

func runAdminUploadImage(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	eventID, path := args[0], args[1]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("reading image info: %w", err)
	}

	ack, err := uploadSvc.UploadEventImage(context.Background(), eventID, service.ImageUpload{
		FileName:    filepath.Base(path),
		ContentType: contentTypeForExt(filepath.Ext(path)),
		Size:        info.Size(),
		Content:     file,
	})
	if err != nil {
		return err
	}

	message := ack.Message
	if message == "" {
		message = "Image uploaded."
	}
	okColor.Fprintln(os.Stderr, message)
	adminSvc.RefreshInBackground(service.AdminEvents)
	return nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func runAdminMetrics(cmd *cobra.Command, args []string) error {
	snap := metrics.Snapshot()
	fmt.Printf("Requests:   %d (%d failed)\n", snap.Requests, snap.RequestFailures)
	fmt.Printf("Cache:      %d hits, %d misses (%.0f%% hit rate)\n",
		snap.CacheHits, snap.CacheMisses, snap.HitRatio()*100)
	fmt.Printf("Refreshes:  %d\n", snap.SessionRefreshes)
	return nil
}
