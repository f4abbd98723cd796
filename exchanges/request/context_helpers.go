package request

import "context"

type verboseKey struct{}

// WithVerbose marks every request sent with the returned context as verbose,
// regardless of the verbosity of the issuing client
func WithVerbose(ctx context.Context) context.Context {
	return context.WithValue(ctx, verboseKey{}, true)
}

// IsVerbose reports whether a request should be logged, either because the
// client is verbose or because its context was marked by WithVerbose
func IsVerbose(ctx context.Context, verbose bool) bool {
	if verbose {
		return true
	}
	v, _ := ctx.Value(verboseKey{}).(bool)
	return v
}
