// Variant rules command replaces the tag-rule filter.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/pkg/types"
)

var (
	rulesIncludeTags []string
	rulesExcludeTags []string
	rulesClear       bool
)

var variantRulesCmd = &cobra.Command{
	Use:   "rules <variant-id>",
	Short: "Replace a variant's tag rules",
	Long: `Rules replaces the variant's rule bag wholesale. Unknown rule keys
already stored are dropped by this command; pass --clear to remove all
rules.

Example:
  seewee variant rules 0192f3a1 --include-tag tech --exclude-tag draft
  seewee variant rules 0192f3a1 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runVariantRules,
}

func init() {
	variantRulesCmd.Flags().StringArrayVar(&rulesIncludeTags, "include-tag", nil, "entry must carry at least one of these tags (repeatable)")
	variantRulesCmd.Flags().StringArrayVar(&rulesExcludeTags, "exclude-tag", nil, "entry must carry none of these tags (repeatable)")
	variantRulesCmd.Flags().BoolVar(&rulesClear, "clear", false, "remove all rules")
}

func runVariantRules(cmd *cobra.Command, args []string) error {
	if !rulesClear && len(rulesIncludeTags) == 0 && len(rulesExcludeTags) == 0 {
		return fmt.Errorf("nothing to do: pass --include-tag, --exclude-tag or --clear")
	}

	rules := types.Rules{}
	if !rulesClear {
		if len(rulesIncludeTags) > 0 {
			rules[types.RuleIncludeTags] = rulesIncludeTags
		}
		if len(rulesExcludeTags) > 0 {
			rules[types.RuleExcludeTags] = rulesExcludeTags
		}
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	if err := store.UpdateVariantRules(args[0], rules); err != nil {
		return fmt.Errorf("update rules: %w", err)
	}

	fmt.Printf("Updated rules for variant %s\n", shortID(args[0]))
	return nil
}
