package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// portCategories maps sensitive ports to their finding category, in
// evaluation order.
var portCategories = []struct {
	port     int
	category string
}{
	{22, "OPEN_SSH_PORT"},
	{3389, "OPEN_RDP_PORT"},
	{23, "OPEN_TELNET_PORT"},
	{21, "OPEN_FTP_PORT"},
	{3306, "OPEN_MYSQL_PORT"},
	{5432, "OPEN_POSTGRESQL_PORT"},
	{27017, "OPEN_MONGODB_PORT"},
	{6379, "OPEN_REDIS_PORT"},
	{9200, "OPEN_ELASTICSEARCH_PORT"},
	{80, "OPEN_HTTP_PORT"},
	{53, "OPEN_DNS_PORT"},
	{25, "OPEN_SMTP_PORT"},
}

// skipFirewallRule reports whether a rule is GKE-managed plumbing.
// Those rules are excluded from evaluation and from egress coverage.
func skipFirewallRule(name string) bool {
	return strings.HasPrefix(name, "gke-") || strings.HasPrefix(name, "k8s-")
}

// EvaluateFirewallRule checks one VPC firewall rule. Only INGRESS rules
// open to the internet produce per-rule findings: OPEN_FIREWALL when an
// allowed entry admits every protocol without a port restriction, one
// finding per exposed sensitive port, and the logging check.
func EvaluateFirewallRule(project string, rule models.FirewallRule) ([]models.Finding, error) {
	if rule.Name == "" {
		return nil, fmt.Errorf("firewall rule snapshot in project %s has no name", project)
	}
	if skipFirewallRule(rule.Name) {
		return nil, nil
	}
	if rule.Direction != "INGRESS" || !openToInternet(rule.SourceRanges) {
		return nil, nil
	}

	resource := fmt.Sprintf("//compute.googleapis.com/projects/%s/global/firewalls/%s", project, rule.Name)
	var findings []models.Finding
	add := func(category string) {
		findings = append(findings, newFinding(category, resource, models.ResourceFirewall, project, "global"))
	}

	for _, allowed := range rule.Allowed {
		if allowed.Protocol == "all" && len(allowed.Ports) == 0 {
			add("OPEN_FIREWALL")
			break
		}
	}

	for _, pc := range portCategories {
		if portAllowed(rule.Allowed, pc.port) {
			add(pc.category)
		}
	}

	if !rule.LoggingEnabled {
		add("FIREWALL_RULE_LOGGING_DISABLED")
	}

	return findings, nil
}

// EvaluateProjectEgress emits the project-scoped egress finding when no
// firewall rule in the project denies all egress traffic. The finding
// is anchored to the project itself and produced at most once per call,
// including for projects with no rules at all.
func EvaluateProjectEgress(project string, rules []models.FirewallRule) []models.Finding {
	for _, rule := range rules {
		if skipFirewallRule(rule.Name) {
			continue
		}
		if rule.Direction != "EGRESS" {
			continue
		}
		for _, denied := range rule.Denied {
			if denied.Protocol == "all" {
				return nil
			}
		}
	}
	resource := fmt.Sprintf("//compute.googleapis.com/projects/%s", project)
	return []models.Finding{newFinding("EGRESS_DENY_RULE_NOT_SET", resource, models.ResourceProject, project, "global")}
}

// openToInternet reports whether any source range admits the whole
// internet.
func openToInternet(sourceRanges []string) bool {
	for _, r := range sourceRanges {
		if r == "0.0.0.0/0" || r == "::/0" {
			return true
		}
	}
	return false
}

// portAllowed reports whether any allowed entry admits port. Only the
// all/tcp/udp protocols are considered. An entry with no ports admits
// every port; otherwise entries are single ports or inclusive ranges
// like "20-25". Malformed entries never match.
func portAllowed(allowed []models.FirewallProtocolPorts, port int) bool {
	for _, entry := range allowed {
		switch entry.Protocol {
		case "all", "tcp", "udp":
		default:
			continue
		}
		if len(entry.Ports) == 0 {
			return true
		}
		for _, spec := range entry.Ports {
			if portSpecMatches(spec, port) {
				return true
			}
		}
	}
	return false
}

func portSpecMatches(spec string, port int) bool {
	if lo, hi, ok := strings.Cut(spec, "-"); ok {
		start, err1 := strconv.Atoi(lo)
		end, err2 := strconv.Atoi(hi)
		return err1 == nil && err2 == nil && start <= port && port <= end
	}
	return spec == strconv.Itoa(port)
}
