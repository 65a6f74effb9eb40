// Package rules contains the resource evaluators: pure functions that
// map one collected resource snapshot to zero or more findings. Rule
// metadata (severity, texts, compliance tags) comes from the catalog;
// evaluators only decide whether a category applies.
package rules

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/catalog"
	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// newFinding builds the finding for one category on one resource. A
// category missing from the catalog degrades to INFO with empty texts;
// the finding is still emitted so a catalog gap never drops a detection.
func newFinding(category, resourceName string, resourceType models.ResourceType, project, location string) models.Finding {
	def, ok := catalog.Lookup(category)
	if !ok {
		def = catalog.Definition{Severity: models.SeverityInfo}
	}
	return models.Finding{
		Name:             findingName(project, category, resourceName),
		Category:         category,
		Severity:         def.Severity,
		State:            models.StateActive,
		Class:            models.ClassMisconfiguration,
		ResourceName:     resourceName,
		ResourceType:     resourceType,
		ResourceProject:  project,
		ResourceLocation: location,
		Description:      def.Description,
		Remediation:      def.Remediation,
		Compliance:       append([]string(nil), def.Compliance...),
		ScanTime:         time.Now().UTC().Format(time.RFC3339),
	}
}

// findingName derives the stable finding identifier. The suffix hashes
// the resource name (FNV-1a, reduced to eight decimal digits) so the
// same resource failing the same rule keeps its identity across runs,
// while distinct categories on one resource stay distinct.
func findingName(project, category, resourceName string) string {
	h := fnv.New32a()
	h.Write([]byte(resourceName))
	return fmt.Sprintf("projects/%s/sources/scanner/findings/%s-%08d", project, category, h.Sum32()%100000000)
}
