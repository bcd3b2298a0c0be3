package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/duckbook/internal/store"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

func (a *app) newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts", "c"},
		Short:   "Manage address-book contacts",
	}
	cmd.AddCommand(
		a.newContactAddCmd(),
		a.newContactShowCmd(),
		a.newContactListCmd(),
		a.newContactSearchCmd(),
		a.newContactDeleteCmd(),
		a.newContactRenameCmd(),
		a.newContactPhoneCmd(),
		a.newContactSetCmd(),
		a.newContactUnsetCmd(),
		a.newContactDaysCmd(),
		a.newContactUpcomingCmd(),
	)
	return cmd
}

func (a *app) newContactAddCmd() *cobra.Command {
	var email, birthday, address string
	cmd := &cobra.Command{
		Use:   "add <name> [phone...]",
		Short: "Add a contact",
		Example: `  duckbook contact add "Alice Smith" 0671234567
  duckbook contact add "Bob Stone" +380501112233 --email bob@mail.com --birthday 1985-01-30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []types.RecordOption
			if cmd.Flags().Changed("email") {
				opts = append(opts, types.WithEmail(email))
			}
			if cmd.Flags().Changed("birthday") {
				opts = append(opts, types.WithBirthday(birthday))
			}
			if cmd.Flags().Changed("address") {
				opts = append(opts, types.WithAddress(address))
			}
			r, err := types.NewRecord(args[0], args[1:], opts...)
			if err != nil {
				return err
			}
			return a.update(func(s *store.Store) error {
				if err := s.Contacts().Create(r); err != nil {
					return err
				}
				return a.emit(cmd, contactViews([]*types.Record{r})[0], "contact has been added\n"+r.String())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday as YYYY-MM-DD")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	return cmd
}

func (a *app) newContactShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				r, err := s.Contacts().Read(args[0])
				if err != nil {
					return err
				}
				return a.emit(cmd, contactViews([]*types.Record{r})[0], r.String())
			})
		},
	}
}

func (a *app) newContactListCmd() *cobra.Command {
	var (
		pageSize int
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				size := s.PageSize()
				switch {
				case all:
					size = max(s.Contacts().Len(), 1)
				case cmd.Flags().Changed("page-size"):
					size = pageSize
				}
				pages, err := s.Contacts().Paginate(size)
				if err != nil {
					return err
				}
				return a.emit(cmd, collectPages(pages, contactViews), renderPages(pages))
			})
		},
	}
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "contacts per page (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "list all contacts on one page")
	cmd.MarkFlagsMutuallyExclusive("all", "page-size")
	return cmd
}

func (a *app) newContactSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find contacts containing a term in any field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				found := s.Contacts().Search(args[0])
				text := blocks(found)
				if len(found) == 0 {
					text = "not found any contact\n"
				}
				return a.emit(cmd, contactViews(found), text)
			})
		},
	}
}

func (a *app) newContactDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(func(s *store.Store) error {
				if err := s.Contacts().Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "contact %s has been deleted\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) newContactRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := types.NewChangeName(args[1])
			if err != nil {
				return err
			}
			return a.applyUpdate(cmd, args[0], u)
		},
	}
}

func (a *app) newContactPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Add, change, or remove contact phones",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <phone>",
			Short: "Add a phone to a contact",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := types.NewAddPhone(args[1])
				if err != nil {
					return err
				}
				return a.applyUpdate(cmd, args[0], u)
			},
		},
		&cobra.Command{
			Use:   "change <name> <old-phone> <new-phone>",
			Short: "Replace one phone of a contact",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := types.NewChangePhone(args[1], args[2])
				if err != nil {
					return err
				}
				return a.applyUpdate(cmd, args[0], u)
			},
		},
		&cobra.Command{
			Use:   "remove <name> <phone>",
			Short: "Remove a phone from a contact",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := types.NewRemovePhone(args[1])
				if err != nil {
					return err
				}
				return a.applyUpdate(cmd, args[0], u)
			},
		},
	)
	return cmd
}

func (a *app) newContactSetCmd() *cobra.Command {
	var email, birthday, address string
	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Add or change the email, birthday, or address of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updaters []types.Updater
			if cmd.Flags().Changed("email") {
				u, err := types.NewAddChangeEmail(email)
				if err != nil {
					return err
				}
				updaters = append(updaters, u)
			}
			if cmd.Flags().Changed("birthday") {
				u, err := types.NewAddChangeBirthday(birthday)
				if err != nil {
					return err
				}
				updaters = append(updaters, u)
			}
			if cmd.Flags().Changed("address") {
				u, err := types.NewAddChangeAddress(address)
				if err != nil {
					return err
				}
				updaters = append(updaters, u)
			}
			if len(updaters) == 0 {
				return fmt.Errorf("%w: set needs at least one of --email, --birthday, --address", types.ErrInvalidArgument)
			}
			return a.applyUpdate(cmd, args[0], updaters...)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday as YYYY-MM-DD")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	return cmd
}

func (a *app) newContactUnsetCmd() *cobra.Command {
	var email, birthday, address bool
	cmd := &cobra.Command{
		Use:   "unset <name>",
		Short: "Clear the email, birthday, or address of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updaters []types.Updater
			if email {
				updaters = append(updaters, types.RemoveEmail{})
			}
			if birthday {
				updaters = append(updaters, types.RemoveBirthday{})
			}
			if address {
				updaters = append(updaters, types.RemoveAddress{})
			}
			if len(updaters) == 0 {
				return fmt.Errorf("%w: unset needs at least one of --email, --birthday, --address", types.ErrInvalidArgument)
			}
			return a.applyUpdate(cmd, args[0], updaters...)
		},
	}
	cmd.Flags().BoolVar(&email, "email", false, "clear the email")
	cmd.Flags().BoolVar(&birthday, "birthday", false, "clear the birthday")
	cmd.Flags().BoolVar(&address, "address", false, "clear the address")
	return cmd
}

func (a *app) newContactDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days <name>",
		Short: "Days until a contact's next birthday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				days, err := s.Contacts().DaysToAnniversary(args[0])
				if err != nil {
					return err
				}
				v := struct {
					Name string `json:"name"`
					Days int    `json:"days"`
				}{args[0], days}
				return a.emit(cmd, v, fmt.Sprintf("%d days left until %s's birthday\n", days, args[0]))
			})
		},
	}
}

func (a *app) newContactUpcomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming <days>",
		Short: "Contacts with a birthday within the next number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%w: days must be an integer, got %q", types.ErrInvalidArgument, args[0])
			}
			return a.view(func(s *store.Store) error {
				found := s.Contacts().FindByAnniversaryWindow(delta)
				return a.emit(cmd, contactViews(found), blocks(found))
			})
		},
	}
}

// applyUpdate runs updaters against one contact in order and saves only if
// all of them succeed. Later updaters address the contact by its current
// name, so a rename mid-sequence is followed.
func (a *app) applyUpdate(cmd *cobra.Command, name string, updaters ...types.Updater) error {
	return a.update(func(s *store.Store) error {
		current := name
		for _, u := range updaters {
			change, err := s.Contacts().Update(current, u)
			if err != nil {
				return err
			}
			current = change.Contact
			fmt.Fprintln(cmd.OutOrStdout(), change.Info())
		}
		return nil
	})
}
