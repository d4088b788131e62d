package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/supertrader/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query a SQLite session journal",
	Long: `Query and display session records from a SQLite journal.

Session ids may be shortened to any unique prefix, such as the eight
characters shown by "journal sessions".

Subcommands:
  sessions  - List recent sessions
  session   - Show one session with its trades
  trades    - List the trades of a session
  equity    - List the equity snapshots of a session

Examples:
  supertrader journal sessions --limit 10
  supertrader journal session 3f2a9c1e
  supertrader journal equity 3f2a9c1e --db ./supertrader.sqlite`,
}

var journalSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runJournalSessions,
}

var journalSessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Show one session with its trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSession,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <session-id>",
	Short: "List the trades of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrades,
}

var journalEquityCmd = &cobra.Command{
	Use:   "equity <session-id>",
	Short: "List the equity snapshots of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalEquity,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionsCmd)
	journalCmd.AddCommand(journalSessionCmd)
	journalCmd.AddCommand(journalTradesCmd)
	journalCmd.AddCommand(journalEquityCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default journal.db_path)")
	journalSessionsCmd.Flags().IntVarP(&journalLimit, "limit", "l", 20, "maximum sessions to list (0 for all)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Journal.DBPath
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalSessions(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListSessions(journalLimit)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatSessionsTable(recs))
	return nil
}

func runJournalSession(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	id, err := j.ResolveSessionID(args[0])
	if err != nil {
		return err
	}
	rec, err := j.GetSession(id)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	trades, err := j.ListTrades(id)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatSessionOrg(rec, trades))
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	id, err := j.ResolveSessionID(args[0])
	if err != nil {
		return err
	}
	trades, err := j.ListTrades(id)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, t := range trades {
		fmt.Fprint(out, journal.FormatTradeOrg(t))
	}
	return nil
}

func runJournalEquity(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	id, err := j.ResolveSessionID(args[0])
	if err != nil {
		return err
	}
	points, err := j.ListEquity(id)
	if err != nil {
		return fmt.Errorf("query equity: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatEquityTable(points))
	return nil
}
