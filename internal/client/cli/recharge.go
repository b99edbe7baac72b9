package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/englishhq/internal/client/forms"
)

// Recharge prompts for an amount and an optional description and submits the
// recharge action. The server-confirmed balance is rendered by the form
// controller.
func (a *App) Recharge(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first")
		return nil
	}

	raw, err := getSimpleText(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Println("Amount must be a number")
		return nil
	}

	description, err := getSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	a.forms.Submit(ctx, forms.ActionRecharge, forms.Input{
		Amount:      amount,
		Description: description,
	})
	return nil
}
