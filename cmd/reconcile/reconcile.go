// Package reconcile handles the reconciliation commands
package reconcile

import (
	"strconv"
	"strings"

	"concilia/cmd/root"
	"concilia/internal/logging"
	"concilia/internal/reconciler"

	"github.com/spf13/cobra"
)

var (
	transactionID int64
	movementID    int64
)

// Cmd represents the reconcile command group
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile ledger transactions against bank movements",
	Long: `Reconcile ledger transactions against the bank movements derived
from them. Movements are recomputed from the ledger on every run.`,
}

var movementsCmd = &cobra.Command{
	Use:   "movements",
	Short: "List the bank movements derived from the ledger",
	Run:   movementsFunc,
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a transaction to a bank movement",
	Run:   linkFunc,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove a transaction's reconciliation markers",
	Run:   unlinkFunc,
}

var bulkCmd = &cobra.Command{
	Use:   "bulk <transaction:movement> [<transaction:movement> ...]",
	Short: "Link several transaction and movement pairs in one run",
	Args:  cobra.MinimumNArgs(1),
	Run:   bulkFunc,
}

func init() {
	Cmd.AddCommand(movementsCmd)
	Cmd.AddCommand(linkCmd)
	Cmd.AddCommand(unlinkCmd)
	Cmd.AddCommand(bulkCmd)

	linkCmd.Flags().Int64VarP(&transactionID, "transaction", "t", 0, "Ledger transaction id (required)")
	linkCmd.Flags().Int64VarP(&movementID, "movement", "m", 0, "Bank movement id")
	_ = linkCmd.MarkFlagRequired("transaction")

	unlinkCmd.Flags().Int64VarP(&transactionID, "transaction", "t", 0, "Ledger transaction id (required)")
	_ = unlinkCmd.MarkFlagRequired("transaction")
}

func newMatcher(cmd *cobra.Command) *reconciler.Matcher {
	matcher := reconciler.NewMatcher(root.NewStore(), root.Log)
	if err := matcher.Refresh(cmd.Context()); err != nil {
		root.Log.Fatalf("Error loading ledger: %v", err)
	}
	return matcher
}

func movementsFunc(cmd *cobra.Command, args []string) {
	matcher := newMatcher(cmd)
	movements := matcher.Movements()
	for _, m := range movements {
		root.Log.Info(m.String())
	}
	root.Log.Info("Derived bank movements",
		logging.Field{Key: "count", Value: len(movements)})
}

func linkFunc(cmd *cobra.Command, args []string) {
	matcher := newMatcher(cmd)
	tx, err := matcher.Link(cmd.Context(), transactionID, movementID)
	if err != nil {
		root.Log.Fatalf("Error linking transaction: %v", err)
	}
	root.Log.Info("Transaction reconciled",
		logging.Field{Key: "transaction_id", Value: tx.ID},
		logging.Field{Key: "notes", Value: tx.Notes})
}

func unlinkFunc(cmd *cobra.Command, args []string) {
	matcher := newMatcher(cmd)
	tx, err := matcher.Unlink(cmd.Context(), transactionID)
	if err != nil {
		root.Log.Fatalf("Error unlinking transaction: %v", err)
	}
	root.Log.Info("Transaction reconciliation removed",
		logging.Field{Key: "transaction_id", Value: tx.ID})
}

func bulkFunc(cmd *cobra.Command, args []string) {
	requests := make([]reconciler.LinkRequest, 0, len(args))
	for _, arg := range args {
		req, err := parsePair(arg)
		if err != nil {
			root.Log.Fatalf("Invalid pair %q: %v", arg, err)
		}
		requests = append(requests, req)
	}

	matcher := newMatcher(cmd)
	result := matcher.ReconcileMany(cmd.Context(), requests)
	for _, e := range result.Errors {
		root.Log.Warn("Reconciliation failed", logging.Field{Key: "error", Value: e})
	}
	root.Log.Info("Bulk reconciliation finished",
		logging.Field{Key: "linked", Value: result.Linked},
		logging.Field{Key: "failed", Value: result.Failed})
}

// parsePair parses a "transaction:movement" argument. The movement part
// is optional.
func parsePair(arg string) (reconciler.LinkRequest, error) {
	var req reconciler.LinkRequest
	parts := strings.SplitN(arg, ":", 2)

	txID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return req, err
	}
	req.TransactionID = txID

	if len(parts) == 2 && parts[1] != "" {
		mvID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return req, err
		}
		req.MovementID = mvID
	}
	return req, nil
}
