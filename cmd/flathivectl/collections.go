package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// collections the list/get/delete/toggle commands accept.
var knownCollections = []string{
	"flatmates", "expenses", "groceries", "chores", "events",
	"polls", "notes", "moods", "services", "tasks", "classes",
}

func validCollection(name string) error {
	for _, c := range knownCollections {
		if c == name {
			return nil
		}
	}
	return fmt.Errorf("unknown collection %q", name)
}

func printResponse(resp interface {
	IsError() bool
	StatusCode() int
	String() string
}) error {
	if resp.IsError() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	_, _ = fmt.Fprintln(os.Stdout, resp.String())
	return nil
}

// printExpenses renders the expense listing with rupee amounts, the
// formatting the service itself never does.
func printExpenses(body []byte, out io.Writer) error {
	var listing struct {
		Items []struct {
			Name     string  `json:"name"`
			Amount   float64 `json:"amount"`
			Category string  `json:"category"`
			PaidBy   string  `json:"paidBy"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return err
	}
	for _, e := range listing.Items {
		_, _ = fmt.Fprintf(out, "%-24s ₹%.2f  %-10s paid by %s\n", e.Name, e.Amount, e.Category, e.PaidBy)
	}
	return nil
}

func init() {
	var pretty bool
	listCmd := &cobra.Command{
		Use:   "list COLLECTION",
		Short: "List a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validCollection(args[0]); err != nil {
				return err
			}
			resp, err := client().R().Get("/api/" + args[0])
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
			}
			if pretty && args[0] == "expenses" {
				return printExpenses(resp.Body(), os.Stdout)
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	listCmd.Flags().BoolVar(&pretty, "pretty", false, "Human-readable output (expenses)")
	rootCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get COLLECTION ID",
		Short: "Get one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validCollection(args[0]); err != nil {
				return err
			}
			resp, err := client().R().Get(fmt.Sprintf("/api/%s/%s", args[0], args[1]))
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	rootCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete COLLECTION ID",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validCollection(args[0]); err != nil {
				return err
			}
			resp, err := client().R().Delete(fmt.Sprintf("/api/%s/%s", args[0], args[1]))
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
			}
			return nil
		},
	}
	rootCmd.AddCommand(deleteCmd)

	toggleCmd := &cobra.Command{
		Use:   "toggle COLLECTION ID",
		Short: "Toggle a grocery, chore, or task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validCollection(args[0]); err != nil {
				return err
			}
			resp, err := client().R().Post(fmt.Sprintf("/api/%s/%s/toggle", args[0], args[1]))
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	rootCmd.AddCommand(toggleCmd)

	var amount float64
	var category, name string
	addExpenseCmd := &cobra.Command{
		Use:   "add-expense",
		Short: "Record a shared expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().
				SetBody(map[string]interface{}{
					"name":     name,
					"amount":   amount,
					"category": category,
					"date":     time.Now().Format(time.RFC3339),
				}).
				Post("/api/expenses")
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	addExpenseCmd.Flags().StringVarP(&name, "name", "n", "", "Expense name (required)")
	addExpenseCmd.Flags().Float64Var(&amount, "amount", 0, "Amount (required)")
	addExpenseCmd.Flags().StringVarP(&category, "category", "c", "Other", "Category: Rent, Bills, Groceries, Food, Other")
	_ = addExpenseCmd.MarkFlagRequired("name")
	_ = addExpenseCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addExpenseCmd)

	var quantity int
	var item string
	addGroceryCmd := &cobra.Command{
		Use:   "add-grocery",
		Short: "Add an item to the grocery list",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().
				SetBody(map[string]interface{}{"name": item, "quantity": quantity}).
				Post("/api/groceries")
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	addGroceryCmd.Flags().StringVarP(&item, "name", "n", "", "Item name (required)")
	addGroceryCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity")
	_ = addGroceryCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(addGroceryCmd)

	var optionIndex int
	voteCmd := &cobra.Command{
		Use:   "vote POLL_ID",
		Short: "Cast or move your vote on a poll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().
				SetBody(map[string]int{"optionIndex": optionIndex}).
				Post(fmt.Sprintf("/api/polls/%s/vote", args[0]))
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	voteCmd.Flags().IntVarP(&optionIndex, "option", "o", 0, "Option index")
	rootCmd.AddCommand(voteCmd)
}
