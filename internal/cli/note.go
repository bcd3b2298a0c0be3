package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/duckbook/internal/store"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

func (a *app) newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Manage tagged notes",
	}
	cmd.AddCommand(
		a.newNoteAddCmd(),
		a.newNoteShowCmd(),
		a.newNoteListCmd(),
		a.newNoteFindCmd(),
		a.newNoteDeleteCmd(),
		a.newNoteTagCmd(),
		a.newNoteEditCmd(),
	)
	return cmd
}

// splitNoteWords separates #tags from body words.
func splitNoteWords(words []string) (body string, tags []string) {
	var rest []string
	for _, w := range words {
		for _, f := range strings.Fields(w) {
			if strings.HasPrefix(f, "#") {
				tags = append(tags, f)
			} else {
				rest = append(rest, f)
			}
		}
	}
	return strings.Join(rest, " "), tags
}

func (a *app) newNoteAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <word|#tag>...",
		Short:   "Add a note; words starting with # become tags",
		Example: `  duckbook note add Buy milk and bread #chore #home`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, tags := splitNoteWords(args)
			if len(tags) == 0 {
				return fmt.Errorf("%w: a note needs at least one #tag", types.ErrInvalidArgument)
			}
			n, err := types.NewNote(body, tags)
			if err != nil {
				return err
			}
			return a.update(func(s *store.Store) error {
				stored, err := s.Notes().Add(n)
				if err != nil {
					return err
				}
				return a.emit(cmd, noteViews([]*types.Note{stored})[0], "note has been added\n"+stored.String())
			})
		},
	}
}

func (a *app) newNoteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				n, err := s.Notes().Get(args[0])
				if err != nil {
					return err
				}
				return a.emit(cmd, noteViews([]*types.Note{n})[0], n.String())
			})
		},
	}
}

func (a *app) newNoteListCmd() *cobra.Command {
	var (
		pageSize int
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				size := s.PageSize()
				switch {
				case all:
					size = max(s.Notes().Len(), 1)
				case cmd.Flags().Changed("page-size"):
					size = pageSize
				}
				pages, err := s.Notes().Paginate(size)
				if err != nil {
					return err
				}
				return a.emit(cmd, collectPages(pages, noteViews), renderPages(pages))
			})
		},
	}
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "notes per page (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "list all notes on one page")
	cmd.MarkFlagsMutuallyExclusive("all", "page-size")
	return cmd
}

func (a *app) newNoteFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <#tag>",
		Short: "Find notes carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(func(s *store.Store) error {
				found, err := s.Notes().FindByTag(args[0])
				if err != nil {
					return err
				}
				text := blocks(found)
				if len(found) == 0 {
					text = fmt.Sprintf("no notes tagged %s\n", args[0])
				}
				return a.emit(cmd, noteViews(found), text)
			})
		},
	}
}

func (a *app) newNoteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(func(s *store.Store) error {
				if err := s.Notes().Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "note %s has been deleted\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) newNoteTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Add or remove note tags",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <#tag>",
			Short: "Add a tag to a note",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.update(func(s *store.Store) error {
					if err := s.Notes().AddTag(args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "tag %s has been added to note %s\n", args[1], args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <id> <#tag>",
			Short: "Remove a tag from a note",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.update(func(s *store.Store) error {
					n, err := s.Notes().Get(args[0])
					if err != nil {
						return err
					}
					tag, err := types.NewNoteTag(args[1])
					if err != nil {
						return err
					}
					if n.HasTag(tag) && len(n.Tags()) == 1 {
						return fmt.Errorf("%w: cannot remove the last tag of note %s", types.ErrInvalidArgument, args[0])
					}
					if err := s.Notes().RemoveTag(args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "tag %s has been removed from note %s\n", args[1], args[0])
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) newNoteEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <word>...",
		Short: "Replace the body of a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.Join(strings.Fields(strings.Join(args[1:], " ")), " ")
			return a.update(func(s *store.Store) error {
				if err := s.Notes().SetBody(args[0], body); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "note %s has been changed\n", args[0])
				return nil
			})
		},
	}
}
