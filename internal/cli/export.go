package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/duckbook/internal/sqlite"
	"github.com/mesh-intelligence/duckbook/internal/store"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

func (a *app) newExportCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export both books into a SQLite database",
		Long: `Export writes every contact, phone, note, and tag into a fresh SQLite
database. The JSON data files are not modified.`,
		Example: `  duckbook export --sqlite ./duckbook.db`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return fmt.Errorf("%w: --sqlite is required", types.ErrInvalidArgument)
			}
			return a.view(func(s *store.Store) error {
				stats, err := sqlite.Export(cmd.Context(), dbPath, s.Contacts(), s.Notes())
				if errors.Is(err, types.ErrInvalidArgument) {
					return err
				}
				if err != nil {
					return sysError(err)
				}
				a.log.Info("exported sqlite snapshot",
					zap.String("path", dbPath),
					zap.Int("contacts", stats.Contacts),
					zap.Int("notes", stats.Notes),
				)
				return a.emit(cmd, stats, fmt.Sprintf("exported %d contacts (%d phones) and %d notes (%d tags) to %s\n",
					stats.Contacts, stats.Phones, stats.Notes, stats.Tags, dbPath))
			})
		},
	}
	cmd.Flags().StringVar(&dbPath, "sqlite", "", "path of the SQLite database to write")
	return cmd
}
