package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the personal profile",
	Long: `Profile holds the singleton personal record: name, contact links, and
summary. Every export reads it; there is exactly one per data
directory and it is created empty on first use.`,
}

func init() {
	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileSetCmd)
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		profile, err := store.GetProfile()
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		if flagJSON {
			return printJSON(profile)
		}
		for _, f := range profileFields {
			fmt.Printf("%s: %s\n", f.name, f.get(profile))
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <field=value> [field=value...]",
	Short: "Update profile fields",
	Long: `Set updates one or more profile fields. Unnamed fields keep their
current value.

Fields: full_name, email, phone, address, github, linkedin, website,
summary.

Example:
  seewee profile set full_name="Ada Lovelace" email=ada@example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		profile, err := store.GetProfile()
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("expected field=value, got %q", arg)
			}
			field, ok := lookupProfileField(name)
			if !ok {
				return fmt.Errorf("unknown profile field %q", name)
			}
			field.set(profile, value)
		}

		if err := store.PutProfile(profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		fmt.Println("Profile updated")
		return nil
	},
}

// profileField maps a flat field name onto the nested profile struct.
type profileField struct {
	name string
	get  func(*types.Profile) string
	set  func(*types.Profile, string)
}

var profileFields = []profileField{
	{"full_name",
		func(p *types.Profile) string { return p.Personal.FullName },
		func(p *types.Profile, v string) { p.Personal.FullName = v }},
	{"email",
		func(p *types.Profile) string { return p.Links.Email },
		func(p *types.Profile, v string) { p.Links.Email = v }},
	{"phone",
		func(p *types.Profile) string { return p.Links.Phone },
		func(p *types.Profile, v string) { p.Links.Phone = v }},
	{"address",
		func(p *types.Profile) string { return p.Links.Address },
		func(p *types.Profile, v string) { p.Links.Address = v }},
	{"github",
		func(p *types.Profile) string { return p.Links.GitHub },
		func(p *types.Profile, v string) { p.Links.GitHub = v }},
	{"linkedin",
		func(p *types.Profile) string { return p.Links.LinkedIn },
		func(p *types.Profile, v string) { p.Links.LinkedIn = v }},
	{"website",
		func(p *types.Profile) string { return p.Links.Website },
		func(p *types.Profile, v string) { p.Links.Website = v }},
	{"summary",
		func(p *types.Profile) string { return p.Content.Summary },
		func(p *types.Profile, v string) { p.Content.Summary = v }},
}

func lookupProfileField(name string) (profileField, bool) {
	for _, f := range profileFields {
		if f.name == name {
			return f, true
		}
	}
	return profileField{}, false
}
