// ABOUTME: This file implements the catalog listing commands
// ABOUTME: Events, artists, and packs render as borderless tables

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse the event catalog",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming events",
	Args:  cobra.NoArgs,
	RunE:  runEventsList,
}

var eventsPastCmd = &cobra.Command{
	Use:   "past",
	Short: "List past events, page by page",
	Args:  cobra.NoArgs,
	RunE:  runEventsPast,
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <id-or-slug>",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsShow,
}

var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "List artists visible on the website",
	Args:  cobra.NoArgs,
	RunE:  runArtistsList,
}

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List ticket packs",
	Args:  cobra.NoArgs,
	RunE:  runPacksList,
}

func init() {
	rootCmd.AddCommand(eventsCmd, artistsCmd, packsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsPastCmd, eventsShowCmd)

	eventsListCmd.Flags().Bool("refresh", false, "bypass the cache")
	eventsPastCmd.Flags().Int("pages", 1, "number of pages to fetch")
}

func runEventsList(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	events, err := catalogSvc.UpcomingEvents(context.Background(), refresh)
	if err != nil {
		return err
	}

	table := newTable(os.Stdout, []string{"ID", "Title", "Date", "City", "Available"})
	for _, e := range events {
		table.Append([]string{e.ID, e.Title, e.Date, e.City, strconv.Itoa(e.AvailableTickets)})
	}
	table.Render()
	return nil
}

func runEventsPast(cmd *cobra.Command, args []string) error {
	pages, _ := cmd.Flags().GetInt("pages")

	events, err := catalogSvc.PastEvents(context.Background(), false)
	if err != nil {
		return err
	}
	for i := 1; i < pages && catalogSvc.HasMorePastEvents(); i++ {
		events, err = catalogSvc.MorePastEvents(context.Background())
		if err != nil {
			return err
		}
	}

	table := newTable(os.Stdout, []string{"ID", "Title", "Date", "City"})
	for _, e := range events {
		table.Append([]string{e.ID, e.Title, e.Date, e.City})
	}
	table.Render()

	if catalogSvc.HasMorePastEvents() {
		fmt.Fprintln(os.Stderr, "More pages available, rerun with --pages")
	}
	return nil
}

func runEventsShow(cmd *cobra.Command, args []string) error {
	event, err := catalogSvc.EventByID(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", event.Title)
	fmt.Printf("  ID:        %s\n", event.ID)
	fmt.Printf("  Date:      %s %s\n", event.Date, event.Time)
	fmt.Printf("  Location:  %s, %s\n", event.Location, event.City)
	if event.Price != nil {
		fmt.Printf("  From:      %.2f %s\n", event.Price.From, event.Price.Currency)
	}
	if event.Capacity > 0 {
		fmt.Printf("  Tickets:   %d/%d available\n", event.AvailableTickets, event.Capacity)
	}
	for _, a := range event.Artists {
		fmt.Printf("  Artist:    %s (%s)\n", a.Name, a.Role)
	}
	return nil
}

func runArtistsList(cmd *cobra.Command, args []string) error {
	artists, err := catalogSvc.Artists(context.Background(), false)
	if err != nil {
		return err
	}

	table := newTable(os.Stdout, []string{"ID", "Name", "Role", "Events"})
	for _, a := range artists {
		table.Append([]string{a.ID, a.Name, a.Role, strconv.Itoa(a.EventsCount)})
	}
	table.Render()
	return nil
}

func runPacksList(cmd *cobra.Command, args []string) error {
	packs, err := catalogSvc.Packs(context.Background(), false)
	if err != nil {
		return err
	}

	table := newTable(os.Stdout, []string{"ID", "Name", "Price", "Active"})
	for _, p := range packs {
		table.Append([]string{p.ID, p.Name, fmt.Sprintf("%.2f %s", p.Price, p.Currency), strconv.FormatBool(p.IsActive)})
	}
	table.Render()
	return nil
}
