package router

import (
	"context"
	"reflect"

	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/reflectutil"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

// bindSession fills the request fields tagged with `session:"key"` from the
// request's session. With the delete option, the key is removed from the
// session once it has been read.
func bindSession(ctx context.Context, req any) error {
	fields := reflectutil.TaggedFields(req, "session")
	if len(fields) == 0 {
		return nil
	}

	store := xcontext.SessionStore(ctx)
	if store == nil {
		return nil
	}

	httpReq := xcontext.HTTPRequest(ctx)
	session, err := store.Get(httpReq, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		// A cookie signed with another secret is treated as an empty session.
		xcontext.Logger(ctx).Debugf("Cannot decode session: %v", err)
	}

	if session == nil {
		return nil
	}

	mustSave := false
	for _, field := range fields {
		if field.Value.Kind() != reflect.String {
			continue
		}

		value, _ := session.Values[field.Name].(string)
		field.Value.SetString(value)

		if field.HasOption("delete") {
			if _, ok := session.Values[field.Name]; ok {
				delete(session.Values, field.Name)
				mustSave = true
			}
		}
	}

	if mustSave {
		if err := session.Save(httpReq, xcontext.ResponseWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save session: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
