package compute

import (
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/protobuf/proto"
)

func TestInstanceSnapshot_FullMapping(t *testing.T) {
	inst := &computepb.Instance{
		Name:               proto.String("web-1"),
		Zone:               proto.String("https://www.googleapis.com/compute/v1/projects/prod-app/zones/us-central1-a"),
		MachineType:        proto.String("https://www.googleapis.com/compute/v1/projects/prod-app/zones/us-central1-a/machineTypes/n2d-standard-4"),
		CanIpForward:       proto.Bool(true),
		DeletionProtection: proto.Bool(true),
		ConfidentialInstanceConfig: &computepb.ConfidentialInstanceConfig{
			EnableConfidentialCompute: proto.Bool(true),
		},
		ShieldedInstanceConfig: &computepb.ShieldedInstanceConfig{
			EnableSecureBoot:          proto.Bool(true),
			EnableVtpm:                proto.Bool(false),
			EnableIntegrityMonitoring: proto.Bool(true),
		},
		ServiceAccounts: []*computepb.ServiceAccount{
			{Email: proto.String("app@prod-app.iam.gserviceaccount.com"), Scopes: []string{"https://www.googleapis.com/auth/devstorage.read_only"}},
		},
		NetworkInterfaces: []*computepb.NetworkInterface{
			{AccessConfigs: []*computepb.AccessConfig{{NatIP: proto.String("1.2.3.4")}}},
			{},
		},
		Metadata: &computepb.Metadata{Items: []*computepb.Items{
			{Key: proto.String("serial-port-enable"), Value: proto.String("true")},
		}},
	}

	snap := instanceSnapshot(inst)

	if snap.Name != "web-1" {
		t.Errorf("name: got %q; want web-1", snap.Name)
	}
	if snap.Zone != "us-central1-a" {
		t.Errorf("zone: got %q; want short zone name", snap.Zone)
	}
	if snap.MachineType != "n2d-standard-4" {
		t.Errorf("machine type: got %q; want short type name", snap.MachineType)
	}
	if !snap.CanIPForward || !snap.DeletionProtection || !snap.ConfidentialComputeEnabled {
		t.Error("boolean instance settings not carried over")
	}
	if !snap.Shielded.SecureBoot || snap.Shielded.VTPM || !snap.Shielded.IntegrityMonitoring {
		t.Errorf("shielded config mismatch: %+v", snap.Shielded)
	}
	if len(snap.ServiceAccounts) != 1 || snap.ServiceAccounts[0].Email != "app@prod-app.iam.gserviceaccount.com" {
		t.Errorf("service accounts: %+v", snap.ServiceAccounts)
	}
	if len(snap.NetworkInterfaces) != 2 {
		t.Fatalf("want 2 interfaces, got %d", len(snap.NetworkInterfaces))
	}
	if snap.NetworkInterfaces[0].AccessConfigs[0].NatIP != "1.2.3.4" {
		t.Errorf("nat IP: got %q", snap.NetworkInterfaces[0].AccessConfigs[0].NatIP)
	}
	if snap.Metadata["serial-port-enable"] != "true" {
		t.Errorf("metadata: %v", snap.Metadata)
	}
}

func TestInstanceSnapshot_AbsentOptionalBlocks(t *testing.T) {
	// No shielded, confidential, metadata, or network blocks at all.
	inst := &computepb.Instance{Name: proto.String("bare")}

	snap := instanceSnapshot(inst)

	if snap.Shielded.SecureBoot || snap.Shielded.VTPM || snap.Shielded.IntegrityMonitoring {
		t.Error("absent shielded config must map to all-off")
	}
	if snap.ConfidentialComputeEnabled {
		t.Error("absent confidential config must map to disabled")
	}
	if snap.Metadata != nil {
		t.Errorf("absent metadata must map to nil, got %v", snap.Metadata)
	}
}

func TestFirewallSnapshot_FullMapping(t *testing.T) {
	fw := &computepb.Firewall{
		Name:         proto.String("allow-ssh"),
		Direction:    proto.String("INGRESS"),
		SourceRanges: []string{"0.0.0.0/0"},
		Allowed: []*computepb.Allowed{
			{IPProtocol: proto.String("tcp"), Ports: []string{"22", "80-90"}},
		},
		Denied: []*computepb.Denied{
			{IPProtocol: proto.String("udp")},
		},
		LogConfig: &computepb.FirewallLogConfig{Enable: proto.Bool(true)},
	}

	rule := firewallSnapshot(fw)

	if rule.Name != "allow-ssh" || rule.Direction != "INGRESS" {
		t.Errorf("identity fields: %+v", rule)
	}
	if len(rule.SourceRanges) != 1 || rule.SourceRanges[0] != "0.0.0.0/0" {
		t.Errorf("source ranges: %v", rule.SourceRanges)
	}
	if len(rule.Allowed) != 1 || rule.Allowed[0].Protocol != "tcp" || len(rule.Allowed[0].Ports) != 2 {
		t.Errorf("allowed: %+v", rule.Allowed)
	}
	if len(rule.Denied) != 1 || rule.Denied[0].Protocol != "udp" || len(rule.Denied[0].Ports) != 0 {
		t.Errorf("denied: %+v", rule.Denied)
	}
	if !rule.LoggingEnabled {
		t.Error("log config enable not carried over")
	}
}

func TestFirewallSnapshot_AbsentLogConfig(t *testing.T) {
	rule := firewallSnapshot(&computepb.Firewall{Name: proto.String("quiet")})
	if rule.LoggingEnabled {
		t.Error("absent log config must map to logging disabled")
	}
}

func TestLastSegment(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://www.googleapis.com/compute/v1/projects/p/zones/us-east1-b", "us-east1-b"},
		{"zones/us-east1-b", "us-east1-b"},
		{"us-east1-b", "us-east1-b"},
		{"", ""},
	}
	for _, c := range cases {
		if got := lastSegment(c.in); got != c.want {
			t.Errorf("lastSegment(%q): got %q; want %q", c.in, got, c.want)
		}
	}
}
