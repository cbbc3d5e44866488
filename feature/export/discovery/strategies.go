package discovery

import (
	"context"

	"content-exporter/core/channel"
)

// internalCategories are content types the backend registers for its own
// bookkeeping. The structured and scripted strategies filter these on the
// server; the unstructured strategy has to filter them client-side.
var internalCategories = map[string]struct{}{
	attachmentCategory:    {},
	"revision":            {},
	"nav_menu_item":       {},
	"custom_css":          {},
	"customize_changeset": {},
	"oembed_cache":        {},
	"user_request":        {},
	"wp_block":            {},
}

// Structured requests categories with an explicit public filter in a
// machine-readable format. First choice because the backend does all the
// filtering.
type Structured struct {
	Channel channel.Channel
}

// Name returns the strategy name used in warnings.
func (s Structured) Name() string {
	return "structured"
}

// Discover runs the filtered listing query.
func (s Structured) Discover(ctx context.Context) ([]string, bool) {
	out, ok := s.Channel.Run(ctx, "post-type", "list", "--public=true", "--field=name", "--format=csv")
	if !ok || channel.SessionTerminated(out) {
		return nil, false
	}
	return splitLines(out), true
}

// Unstructured requests raw category names without filtering and excludes
// internal types client-side. Used when the backend rejects the public
// filter, which restricted administration interfaces do.
type Unstructured struct {
	Channel channel.Channel
}

// Name returns the strategy name used in warnings.
func (s Unstructured) Name() string {
	return "unstructured"
}

// Discover runs the unfiltered listing query and applies the deny list.
func (s Unstructured) Discover(ctx context.Context) ([]string, bool) {
	out, ok := s.Channel.Run(ctx, "post-type", "list", "--field=name")
	if !ok || channel.SessionTerminated(out) {
		return nil, false
	}

	var public []string
	for _, token := range splitLines(out) {
		if _, internal := internalCategories[token]; internal {
			continue
		}
		public = append(public, token)
	}
	return public, true
}

// Scripted issues a backend-native expression that iterates categories and
// filters server-side. Last automated resort: eval access survives on some
// backends where the listing commands are disabled.
type Scripted struct {
	Channel channel.Channel
}

// Name returns the strategy name used in warnings.
func (s Scripted) Name() string {
	return "scripted"
}

// Discover evaluates the category iteration expression on the backend.
func (s Scripted) Discover(ctx context.Context) ([]string, bool) {
	expr := "foreach (get_post_types(array('public' => true)) as $type) { echo $type . PHP_EOL; }"
	out, ok := s.Channel.Run(ctx, "eval", expr)
	if !ok || channel.SessionTerminated(out) {
		return nil, false
	}
	return splitLines(out), true
}

// Manual seeds the baseline categories and appends operator-supplied tokens.
// It never fails, so a chain ending in Manual never yields zero categories.
type Manual struct {
	Extra []string
}

// Name returns the strategy name used in warnings.
func (s Manual) Name() string {
	return "manual"
}

// Discover returns the baseline plus any operator-supplied categories.
func (s Manual) Discover(ctx context.Context) ([]string, bool) {
	cats := append([]string{}, BaselineCategories...)
	return append(cats, s.Extra...), true
}
