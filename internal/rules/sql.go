package rules

import (
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// EvaluateSQLInstance checks one Cloud SQL instance snapshot against
// the database rule set. Network checks run only when the instance
// reports an IP configuration block. Flag checks run only over flags
// the instance declares, scoped to the engine family named in its
// database version (MYSQL, POSTGRES, SQLSERVER); an absent flag
// produces no finding.
func EvaluateSQLInstance(project string, inst models.SQLInstance) ([]models.Finding, error) {
	if inst.Name == "" {
		return nil, fmt.Errorf("sql instance snapshot in project %s has no name", project)
	}

	resource := fmt.Sprintf("//sqladmin.googleapis.com/projects/%s/instances/%s", project, inst.Name)
	location := inst.Location()
	var findings []models.Finding
	add := func(category string) {
		findings = append(findings, newFinding(category, resource, models.ResourceDatabase, project, location))
	}

	if ip := inst.IPConfig; ip != nil {
		if ip.IPv4Enabled {
			add("SQL_PUBLIC_IP")
		}
		if !ip.RequireSSL {
			add("SQL_SSL_NOT_ENFORCED")
		}
		for _, network := range ip.AuthorizedNetworks {
			if network == "0.0.0.0/0" {
				add("SQL_AUTHORIZED_NETWORKS_WIDE")
				break
			}
		}
	}

	if !inst.BackupEnabled {
		add("SQL_AUTO_BACKUP_DISABLED")
	}

	engine := strings.ToUpper(inst.DatabaseVersion)
	flags := inst.DatabaseFlags

	if strings.Contains(engine, "MYSQL") {
		if flags["local_infile"] == "on" {
			add("SQL_LOCAL_INFILE_ENABLED")
		}
	}
	if strings.Contains(engine, "POSTGRES") {
		if flags["log_checkpoints"] == "off" {
			add("SQL_LOG_CHECKPOINTS_DISABLED")
		}
		if flags["log_connections"] == "off" {
			add("SQL_LOG_CONNECTIONS_DISABLED")
		}
		if flags["log_disconnections"] == "off" {
			add("SQL_LOG_DISCONNECTIONS_DISABLED")
		}
		if flags["log_lock_waits"] == "off" {
			add("SQL_LOG_LOCK_WAITS_DISABLED")
		}
	}
	if strings.Contains(engine, "SQLSERVER") {
		if flags["cross db ownership chaining"] == "on" {
			add("SQL_CROSS_DB_OWNERSHIP_ENABLED")
		}
		if flags["contained database authentication"] == "on" {
			add("SQL_CONTAINED_DATABASE_AUTH")
		}
	}

	return findings, nil
}
