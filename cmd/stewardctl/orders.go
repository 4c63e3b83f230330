// ABOUTME: This file implements the order lookup and payment commands
// ABOUTME: The wait flag polls the order until its payment settles

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TeBabaEvent/eventclient/models"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Look up orders and follow payments",
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-number>",
	Short: "Show one order, optionally waiting for the payment to settle",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersStatus,
}

var ordersCaptureCmd = &cobra.Command{
	Use:   "capture <order-number>",
	Short: "Capture an approved online payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersCapture,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersStatusCmd, ordersCaptureCmd)

	ordersStatusCmd.Flags().BoolP("wait", "w", false, "poll until the order reaches a final status")
}

func runOrdersStatus(cmd *cobra.Command, args []string) error {
	orderNumber := args[0]
	wait, _ := cmd.Flags().GetBool("wait")

	if wait {
		// Ctrl-C stops the poll without reporting an error.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		order, err := checkoutSvc.PollOrderStatus(ctx, orderNumber, func(o *models.Order) {
			if !o.Status.IsTerminal() {
				fmt.Fprintf(os.Stderr, "  waiting: %s\n", colorStatus(o.Status))
			}
		})
		if err != nil {
			return err
		}
		if order == nil {
			// Timed out or interrupted; the warning already went out.
			return nil
		}
		printOrder(order)
		return nil
	}

	order, err := checkoutSvc.OrderByNumber(context.Background(), orderNumber)
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func runOrdersCapture(cmd *cobra.Command, args []string) error {
	order, err := checkoutSvc.CapturePayment(context.Background(), args[0])
	if err != nil {
		return err
	}
	okColor.Fprintf(os.Stderr, "Payment captured for %s\n", order.OrderNumber)
	printOrder(order)
	return nil
}

func printOrder(order *models.Order) {
	fmt.Printf("Order %s\n", order.OrderNumber)
	fmt.Printf("  Status:   %s\n", colorStatus(order.Status))
	fmt.Printf("  Customer: %s <%s>\n", order.CustomerName, order.CustomerEmail)
	fmt.Printf("  Amount:   %.2f\n", float64(order.Amount)/100)
	if order.PaymentMethod != "" {
		fmt.Printf("  Payment:  %s\n", order.PaymentMethod)
	}
	for _, item := range order.PackItems {
		fmt.Printf("  Pack:     %dx %s (%.2f)\n", item.Quantity, item.Name, item.Price)
	}
	for _, ticket := range order.Tickets {
		fmt.Printf("  Ticket:   %s  %s (%s)\n", ticket.TicketCode, ticket.HolderName, ticket.Status)
	}
}

func colorStatus(status models.OrderStatus) string {
	switch status {
	case models.OrderCompleted:
		return okColor.Sprint(string(status))
	case models.OrderFailed, models.OrderCancelled:
		return failColor.Sprint(string(status))
	default:
		return warnColor.Sprint(string(status))
	}
}
