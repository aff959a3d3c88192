// Layout command group for the seewee CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/internal/autosave"
	"github.com/seewee/seewee/internal/sqlite"
	"github.com/seewee/seewee/pkg/types"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Edit a variant's layout",
	Long: `Layout edits where entries appear in a variant: which section holds
each entry and in what order, and the order of the sections themselves.

Every edit goes through the autosave conductor: the mutation is applied
to the in-memory layout, marked dirty, and flushed to storage before the
command exits. Edits that leave the layout unchanged write nothing.`,
}

func init() {
	layoutPlaceCmd.Flags().IntVar(&placeIndex, "at", -1, "position within the section (-1 appends)")

	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutPlaceCmd)
	layoutCmd.AddCommand(layoutMoveCmd)
	layoutCmd.AddCommand(layoutReorderCmd)
	layoutCmd.AddCommand(layoutAddSectionCmd)
	layoutCmd.AddCommand(layoutRemoveSectionCmd)
	layoutCmd.AddCommand(layoutRemoveEntryCmd)
	layoutCmd.AddCommand(layoutClearCmd)
}

// layoutSession holds one editing session: the loaded layout plus the
// conductor that persists it.
type layoutSession struct {
	store     *sqlite.Store
	layout    *types.Layout
	name      string
	conductor *autosave.Conductor
}

// openLayoutSession attaches the store, loads the variant's layout, and
// starts a conductor over it. Close flushes pending edits and detaches.
func openLayoutSession(variantID string) (*layoutSession, error) {
	store, err := attachStore()
	if err != nil {
		return nil, err
	}

	variant, err := store.GetVariant(variantID)
	if err != nil {
		store.Detach()
		return nil, fmt.Errorf("get variant: %w", err)
	}
	layout, err := store.LoadLayout(variantID)
	if err != nil {
		store.Detach()
		return nil, fmt.Errorf("load layout: %w", err)
	}

	s := &layoutSession{store: store, layout: layout, name: variant.Name}
	s.conductor = autosave.New(variantID,
		func() (*types.Layout, string) { return s.layout.Snapshot(), s.name },
		func(id string, l *types.Layout, name string) error {
			if err := store.SaveLayout(l); err != nil {
				return err
			}
			return store.UpdateVariantName(id, name)
		},
	)
	s.conductor.Load()
	return s, nil
}

// edit applies a mutation and notifies the conductor.
func (s *layoutSession) edit(fn func(*types.Layout) error) error {
	if err := fn(s.layout); err != nil {
		return err
	}
	s.conductor.Edit()
	return nil
}

// close flushes pending edits synchronously and releases the store.
func (s *layoutSession) close() error {
	defer s.store.Detach()
	defer s.conductor.Stop()
	if err := s.conductor.Flush(); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// runLayoutEdit is the shared driver for layout mutations: open a
// session, apply the edit, flush, and report.
func runLayoutEdit(variantID string, fn func(*types.Layout) error) error {
	session, err := openLayoutSession(variantID)
	if err != nil {
		return err
	}

	if err := session.edit(fn); err != nil {
		session.close()
		return err
	}
	return session.close()
}

func printLayout(layout *types.Layout) {
	for _, s := range layout.Sections {
		fmt.Printf("%s:\n", s.SectionID)
		if len(s.EntryIDs) == 0 {
			fmt.Println("  (empty)")
			continue
		}
		for i, id := range s.EntryIDs {
			fmt.Printf("  %d. %s\n", i, id)
		}
	}
}

var layoutShowCmd = &cobra.Command{
	Use:   "show <variant-id>",
	Short: "Show a variant's layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		layout, err := store.LoadLayout(args[0])
		if err != nil {
			return fmt.Errorf("load layout: %w", err)
		}

		if flagJSON {
			return printJSON(layout)
		}
		if layout.Empty() {
			fmt.Println("Layout is empty; export will auto-group entries by category.")
		}
		printLayout(layout)
		return nil
	},
}

var placeIndex int

var layoutPlaceCmd = &cobra.Command{
	Use:   "place <variant-id> <entry-id> <section>",
	Short: "Place an entry in a section",
	Long: `Place puts an entry at a position in a section, removing it from any
section that previously held it. The index is clamped to the section's
bounds; placing an entry where it already sits is a no-op.

Example:
  seewee layout place 0192f3a1 0192e801 experience --at 0
  seewee layout place 0192f3a1 0192e801 education`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openLayoutSession(args[0])
		if err != nil {
			return err
		}

		// The layout model takes any id; rejecting typos here keeps
		// mistyped ids from becoming dangling references.
		if _, err := session.store.GetEntry(args[1]); err != nil {
			session.close()
			return fmt.Errorf("get entry: %w", err)
		}

		err = session.edit(func(l *types.Layout) error {
			at := placeIndex
			if at < 0 {
				// Place clamps oversized indexes to the section's end.
				at = int(^uint(0) >> 1)
			}
			return l.Place(args[1], args[2], at)
		})
		if err != nil {
			session.close()
			return err
		}
		if err := session.close(); err != nil {
			return err
		}
		fmt.Printf("Placed %s in %s\n", shortID(args[1]), args[2])
		return nil
	},
}

var layoutMoveCmd = &cobra.Command{
	Use:   "move <variant-id> <section> <from> <to>",
	Short: "Move an entry within a section",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseIndexPair(args[2], args[3])
		if err != nil {
			return err
		}
		err = runLayoutEdit(args[0], func(l *types.Layout) error {
			return l.MoveWithinSection(args[1], from, to)
		})
		if err != nil {
			return err
		}
		fmt.Printf("Moved %s[%d] to position %d\n", args[1], from, to)
		return nil
	},
}

var layoutReorderCmd = &cobra.Command{
	Use:   "reorder <variant-id> <from> <to>",
	Short: "Move a section within the section order",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseIndexPair(args[1], args[2])
		if err != nil {
			return err
		}
		err = runLayoutEdit(args[0], func(l *types.Layout) error {
			return l.ReorderSections(from, to)
		})
		if err != nil {
			return err
		}
		fmt.Printf("Moved section %d to position %d\n", from, to)
		return nil
	},
}

var layoutAddSectionCmd = &cobra.Command{
	Use:   "add-section <variant-id> <section>",
	Short: "Append an empty section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runLayoutEdit(args[0], func(l *types.Layout) error {
			return l.AddSection(args[1])
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added section %s\n", args[1])
		return nil
	},
}

var layoutRemoveSectionCmd = &cobra.Command{
	Use:   "remove-section <variant-id> <section>",
	Short: "Remove a section and its placements",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runLayoutEdit(args[0], func(l *types.Layout) error {
			return l.RemoveSection(args[1])
		})
		if err != nil {
			return err
		}
		fmt.Printf("Removed section %s\n", args[1])
		return nil
	},
}

var layoutRemoveEntryCmd = &cobra.Command{
	Use:   "remove-entry <variant-id> <entry-id>",
	Short: "Remove an entry from the layout",
	Long: `Remove-entry takes an entry out of whatever section holds it. The
entry itself is untouched; it just no longer appears in this variant.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runLayoutEdit(args[0], func(l *types.Layout) error {
			l.RemoveEntry(args[1])
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("Removed %s from layout\n", shortID(args[1]))
		return nil
	},
}

var layoutClearCmd = &cobra.Command{
	Use:   "clear <variant-id>",
	Short: "Clear all placements",
	Long: `Clear removes every placement, reverting the variant to auto-grouped
export. The section order is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.ClearLayout(args[0]); err != nil {
			return fmt.Errorf("clear layout: %w", err)
		}
		fmt.Println("Cleared layout")
		return nil
	},
}

func parseIndexPair(fromStr, toStr string) (int, int, error) {
	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return 0, 0, fmt.Errorf("index %q: %w", fromStr, err)
	}
	to, err := strconv.Atoi(toStr)
	if err != nil {
		return 0, 0, fmt.Errorf("index %q: %w", toStr, err)
	}
	return from, to, nil
}
