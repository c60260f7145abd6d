package ironsession

import "context"

type auditMetadataContextKey struct{}

// WithAuditMetadata attaches caller metadata (client IP, request id, and the
// like) to ctx. Audit events emitted by Save and Destroy under this context
// carry the metadata.
func WithAuditMetadata(ctx context.Context, metadata map[string]string) context.Context {
	if len(metadata) == 0 {
		return ctx
	}
	copied := make(map[string]string, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return context.WithValue(ctx, auditMetadataContextKey{}, copied)
}

func auditMetadataFromContext(ctx context.Context) map[string]string {
	if ctx == nil {
		return nil
	}
	metadata, _ := ctx.Value(auditMetadataContextKey{}).(map[string]string)
	return metadata
}
