// Variant create command.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/pkg/types"
)

var (
	createSections    string
	createIncludeTags []string
	createExcludeTags []string
)

var variantCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new variant",
	Long: `Create makes a new variant with the given display name.

Sections default to the standard CV order; pass --sections to override.
Include/exclude tag rules filter entries when the variant auto-groups.

Example:
  seewee variant create "tech resume"
  seewee variant create "academic cv" --sections experience,education,publications,talks
  seewee variant create "short form" --include-tag featured`,
	Args: cobra.ExactArgs(1),
	RunE: runVariantCreate,
}

func init() {
	variantCreateCmd.Flags().StringVar(&createSections, "sections", "experience,education,projects,skills,certifications", "comma-separated section order")
	variantCreateCmd.Flags().StringArrayVar(&createIncludeTags, "include-tag", nil, "entry must carry at least one of these tags (repeatable)")
	variantCreateCmd.Flags().StringArrayVar(&createExcludeTags, "exclude-tag", nil, "entry must carry none of these tags (repeatable)")
}

func runVariantCreate(cmd *cobra.Command, args []string) error {
	var sections []string
	for _, s := range strings.Split(createSections, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}

	rules := types.Rules{}
	if len(createIncludeTags) > 0 {
		rules[types.RuleIncludeTags] = createIncludeTags
	}
	if len(createExcludeTags) > 0 {
		rules[types.RuleExcludeTags] = createExcludeTags
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	variant, err := store.CreateVariant(args[0], rules, sections)
	if err != nil {
		return fmt.Errorf("create variant: %w", err)
	}

	if flagJSON {
		return printJSON(variant)
	}
	fmt.Printf("Created variant %q: %s\n", variant.Name, variant.VariantID)
	return nil
}
