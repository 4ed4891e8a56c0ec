// Package schemaref resolves symbolic schema references, including the
// service-name namespace convention used by merged cross-service
// specifications: a generic reference like "api_TravelInfo" made from an
// operation of service "ts-travel-service" names the canonical schema
// "ts-travel-service_TravelInfo".
//
// Resolution is a pure lookup with no side effects. Every function
// returns nil (or the stripped name) when nothing matches; callers
// decide how to degrade.
package schemaref

import (
	"log/slog"
	"strings"

	"github.com/oasfuzz/oasfuzz/pkg/openapi"
	"github.com/oasfuzz/oasfuzz/pkg/regexcache"
)

const (
	apiPrefix      = "api_"
	actuatorPrefix = "actuator_"
)

var refPattern = regexcache.MustGet(`^#/components/schemas/(.+)$`)

// Name strips the structural prefix from a components reference,
// returning the bare schema name. A bare name passes through unchanged.
func Name(ref string) string {
	if m := refPattern.FindStringSubmatch(ref); len(m) == 2 {
		return m[1]
	}
	return ref
}

// genericSuffix returns the name with its generic prefix (api_ or
// actuator_) removed, and whether the name carried one.
func genericSuffix(name string) (string, bool) {
	if s, ok := strings.CutPrefix(name, apiPrefix); ok {
		return s, true
	}
	if s, ok := strings.CutPrefix(name, actuatorPrefix); ok {
		return s, true
	}
	return "", false
}

// Resolve returns the canonical schema a reference names, or nil.
//
// Search order, first match wins:
//  1. direct lookup of the stripped name
//  2. "<service>_<suffix>" for generic (api_/actuator_) references
//  3. same with the ambient service name, when it differs from service
//  4. any schema name ending in "_<suffix>"; when several candidates
//     share the suffix the winner follows map iteration order, a
//     documented ambiguity rather than a contract
func Resolve(spec *openapi.Spec, ref, service, ambient string) *openapi.Schema {
	name, ok := resolvedName(spec, ref, service, ambient)
	if !ok {
		return nil
	}
	return spec.SchemaByName(name)
}

// ResolvedName performs the same search as Resolve but returns the
// matched canonical name. The two never disagree: when nothing matches,
// the stripped reference name is returned as-is so callers can still
// track it in cycle-detection paths.
func ResolvedName(spec *openapi.Spec, ref, service, ambient string) string {
	name, _ := resolvedName(spec, ref, service, ambient)
	return name
}

func resolvedName(spec *openapi.Spec, ref, service, ambient string) (string, bool) {
	name := Name(ref)
	if spec.SchemaByName(name) != nil {
		return name, true
	}

	suffix, generic := genericSuffix(name)
	if !generic {
		return name, false
	}

	if service != "" {
		candidate := service + "_" + suffix
		if spec.SchemaByName(candidate) != nil {
			slog.Debug("resolved schema ref via service name",
				"ref", name, "resolved", candidate, "service", service)
			return candidate, true
		}
	}

	if ambient != "" && ambient != service {
		candidate := ambient + "_" + suffix
		if spec.SchemaByName(candidate) != nil {
			slog.Debug("resolved schema ref via ambient service name",
				"ref", name, "resolved", candidate, "service", ambient)
			return candidate, true
		}
	}

	for _, key := range spec.SchemaNames() {
		if strings.HasSuffix(key, "_"+suffix) {
			slog.Debug("resolved schema ref by suffix match",
				"ref", name, "resolved", key)
			return key, true
		}
	}

	slog.Debug("could not resolve schema ref", "ref", name)
	return name, false
}
