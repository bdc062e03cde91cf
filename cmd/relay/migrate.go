package main

import (
	"fmt"

	"github.com/bouwconnect/backend/migration"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	version := cctx.String("version")
	if version == "" {
		if err := s.migrateDB(); err != nil {
			return err
		}

		xcontext.Logger(s.ctx).Infof("Migrated database")
		return nil
	}

	migrator, ok := migration.Migrators[version]
	if !ok {
		return fmt.Errorf("not found version %s", version)
	}

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	return migrator(s.ctx)
}
