package editing

import (
	"fmt"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/personalization"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

// SafeDisplay runs resolve and strips override records from the result. A panic
// inside resolve degrades to the base record so rendering never fails.
func SafeDisplay(component schema.Component, resolve func(schema.Component) schema.Component, logger interfaces.Logger) (out schema.Component) {
	if logger == nil {
		logger = logging.NoOp()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("editing.display_fallback",
				"component_id", component.ID,
				"component_type", component.Type,
				"error", fmt.Sprint(r),
			)
			out = personalization.StripVariants(component)
		}
	}()
	if resolve == nil {
		return personalization.StripVariants(component)
	}
	return personalization.StripVariants(resolve(component))
}
