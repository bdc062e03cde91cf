package migration

import (
	"context"
	"sort"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

type Migrator func(context.Context) error

var Migrators = map[string]Migrator{
	"0001": migrate0001,
}

// Versions returns the known migration versions in the order they must run.
func Versions() []string {
	versions := make([]string, 0, len(Migrators))
	for v := range Migrators {
		versions = append(versions, v)
	}

	sort.Strings(versions)
	return versions
}

// Links created before the status column existed are considered added.
func migrate0001(ctx context.Context) error {
	return xcontext.DB(ctx).
		Model(&entity.ToolLink{}).
		Where("status IS NULL OR status = ''").
		Update("status", entity.ToolLinkAdded).Error
}
