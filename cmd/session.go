package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zhubert/tether/metadata"
	"github.com/zhubert/tether/session"
)

const previewLength = 50

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "List, resume, and clone stored sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions across all work directories",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionContinueCmd = &cobra.Command{
	Use:   "continue <session-id>",
	Short: "Resume a specific session by ID",
	Long: `Resume a session by its ID. If the session's work directory is no longer
tracked, the orphaned identity is reattached to the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionContinue,
}

var sessionCloneCmd = &cobra.Command{
	Use:   "clone <session-id>",
	Short: "Create a new session from an existing one",
	Long: `Copy an existing session's full history into a new session owned by the
current directory. The source session is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionClone,
}

var sessionResumeCmd = &cobra.Command{
	Use:   "resume <context-file>",
	Short: "Start a new session from an exported context file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionResume,
}

var sessionOrphanCmd = &cobra.Command{
	Use:   "orphan",
	Short: "List orphaned sessions (work directories that no longer exist)",
	Args:  cobra.NoArgs,
	RunE:  runSessionOrphan,
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionContinueCmd)
	sessionCmd.AddCommand(sessionCloneCmd)
	sessionCmd.AddCommand(sessionResumeCmd)
	sessionCmd.AddCommand(sessionOrphanCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	entries := session.ListAll(store)
	if len(entries) == 0 {
		printWarning("No sessions found.")
		return nil
	}

	printSessionTable(entries, true)

	fmt.Println()
	printSuccess("Total: %d sessions", len(entries))

	orphaned := 0
	for _, e := range entries {
		if e.Orphaned {
			orphaned++
		}
	}
	if orphaned > 0 {
		printWarning("Orphaned: %d sessions", orphaned)
		printHint("Resume any session with: tether session continue <session-id>")
	}
	return nil
}

func runSessionContinue(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	if err := session.ValidateID(sessionID); err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	loc := session.Locate(store, sessionID)
	if loc == nil {
		return fmt.Errorf("session %s not found", sessionID)
	}

	var wd *metadata.WorkDir
	if loc.Registered {
		wd = store.WorkDirByID(loc.WorkDirID)
	} else {
		// Fully orphaned identity: reattach it to the directory the
		// user is resuming from.
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine current directory: %w", err)
		}
		wd = store.NewWorkDir(cwd, loc.WorkDirID)
	}

	wd.LastSessionID = sessionID
	if err := store.Save(); err != nil {
		return err
	}

	printSuccess("Resuming session: %s", sessionID)
	printLabelValue("Work directory", wd.Path)

	if count, preview := session.Preview(loc.ContextFile, previewLength); count > 0 {
		printLabelValue("Messages", fmt.Sprintf("%d", count))
		if preview != "" {
			printLabelValue("Preview", preview)
		}
	}
	return nil
}

func runSessionClone(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	if err := session.ValidateID(sessionID); err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine current directory: %w", err)
	}

	newID, wd, err := session.Clone(store, sessionID, cwd)
	if err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	cloneDir := filepath.Join(store.WorkDirSessionsDir(wd.ID), newID)
	printSuccess("Created new session: %s", newID)
	printLabelValue("Cloned from", sessionID)
	printLabelValue("Location", cloneDir)

	if count, _ := session.Preview(filepath.Join(cloneDir, metadata.ContextFileName), 0); count > 0 {
		printLabelValue("User messages copied", fmt.Sprintf("%d", count))
	}
	return nil
}

func runSessionResume(cmd *cobra.Command, args []string) error {
	contextFile := args[0]

	store, err := loadStore()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine current directory: %w", err)
	}

	newID, wd, err := session.Import(store, contextFile, cwd)
	if err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	printSuccess("Resumed session from: %s", contextFile)
	printLabelValue("New session ID", newID)
	printLabelValue("Location", filepath.Join(store.WorkDirSessionsDir(wd.ID), newID))
	return nil
}

func runSessionOrphan(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var orphaned []session.Entry
	for _, e := range session.ListAll(store) {
		if e.Orphaned {
			orphaned = append(orphaned, e)
		}
	}

	if len(orphaned) == 0 {
		printSuccess("No orphaned sessions found.")
		return nil
	}

	printWarning("Found %d orphaned sessions:", len(orphaned))
	fmt.Println()
	printSessionTable(orphaned, false)
	fmt.Println()
	printHint("Resume any session with: tether session continue <session-id>")
	return nil
}

// printSessionTable renders entries as an aligned table; withStatus adds the
// active/orphaned column used by the full listing.
func printSessionTable(entries []session.Entry, withStatus bool) {
	headers := []string{"ID", "WORK DIR", "MESSAGES", "SIZE", "UPDATED"}
	if withStatus {
		headers = append(headers, "STATUS")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		workDir := e.WorkDirPath
		if workDir == "" {
			workDir = "unknown"
		}

		row := []string{
			e.SessionID,
			truncatePath(workDir, 40),
			fmt.Sprintf("%d", e.MessageCount),
			formatSize(e.Size),
			formatTime(e.UpdatedAt),
		}
		if withStatus {
			if e.Orphaned {
				row = append(row, orphanColor.Sprint("orphaned"))
			} else {
				row = append(row, activeColor.Sprint("active"))
			}
		}
		rows = append(rows, row)
	}

	renderTable(headers, rows)
}
