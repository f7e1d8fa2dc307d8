package auth

import "context"

type contextKey string

const (
	contextKeyProperty contextKey = "auth.property_id"
	contextKeyRole     contextKey = "auth.role"
	contextKeySubject  contextKey = "auth.subject"
)

// WithIdentity stores auth identity details in context.
func WithIdentity(ctx context.Context, propertyID string, role Role, subject string) context.Context {
	ctx = context.WithValue(ctx, contextKeyProperty, propertyID)
	ctx = context.WithValue(ctx, contextKeyRole, role)
	ctx = context.WithValue(ctx, contextKeySubject, subject)
	return ctx
}

// PropertyIDFromContext extracts the property scope from context.
func PropertyIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if propertyID, ok := ctx.Value(contextKeyProperty).(string); ok {
		return propertyID
	}
	return ""
}

// RoleFromContext extracts role from context.
func RoleFromContext(ctx context.Context) Role {
	if ctx == nil {
		return ""
	}
	value := ctx.Value(contextKeyRole)
	if role, ok := value.(Role); ok {
		return role
	}
	if role, ok := value.(string); ok {
		if normalized, valid := NormalizeRole(role); valid {
			return normalized
		}
	}
	return ""
}

// SubjectFromContext extracts subject from context.
func SubjectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if subject, ok := ctx.Value(contextKeySubject).(string); ok {
		return subject
	}
	return ""
}
