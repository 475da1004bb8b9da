package domain

import "strings"

// StickyNote — один стикер на канвасе.
type StickyNote struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// BMCBlock — блок Business Model Canvas (9 штук).
type BMCBlock string

const (
	BMCKeyPartners           BMCBlock = "key_partners"
	BMCKeyActivities         BMCBlock = "key_activities"
	BMCKeyResources          BMCBlock = "key_resources"
	BMCValuePropositions     BMCBlock = "value_propositions"
	BMCCustomerRelationships BMCBlock = "customer_relationships"
	BMCChannels              BMCBlock = "channels"
	BMCCustomerSegments      BMCBlock = "customer_segments"
	BMCCostStructure         BMCBlock = "cost_structure"
	BMCRevenueStreams        BMCBlock = "revenue_streams"
)

var BMCBlocks = []BMCBlock{
	BMCKeyPartners,
	BMCKeyActivities,
	BMCKeyResources,
	BMCValuePropositions,
	BMCCustomerRelationships,
	BMCChannels,
	BMCCustomerSegments,
	BMCCostStructure,
	BMCRevenueStreams,
}

func (b BMCBlock) IsValid() bool {
	for _, v := range BMCBlocks {
		if b == v {
			return true
		}
	}
	return false
}

type BMCData map[BMCBlock][]StickyNote

// FilledBlocks считает блоки, где есть хотя бы один непустой стикер.
func (d BMCData) FilledBlocks() int {
	n := 0
	for _, block := range BMCBlocks {
		if hasNonEmptyNote(d[block]) {
			n++
		}
	}
	return n
}

// VPCZone — зона Value Proposition Canvas (6 штук).
type VPCZone string

const (
	VPCCustomerJobs     VPCZone = "customer_jobs"
	VPCPains            VPCZone = "pains"
	VPCGains            VPCZone = "gains"
	VPCProductsServices VPCZone = "products_services"
	VPCPainRelievers    VPCZone = "pain_relievers"
	VPCGainCreators     VPCZone = "gain_creators"
)

var VPCZones = []VPCZone{
	VPCCustomerJobs,
	VPCPains,
	VPCGains,
	VPCProductsServices,
	VPCPainRelievers,
	VPCGainCreators,
}

func (z VPCZone) IsValid() bool {
	for _, v := range VPCZones {
		if z == v {
			return true
		}
	}
	return false
}

type VPCData map[VPCZone][]StickyNote

func (d VPCData) FilledZones() int {
	n := 0
	for _, zone := range VPCZones {
		if hasNonEmptyNote(d[zone]) {
			n++
		}
	}
	return n
}

func hasNonEmptyNote(notes []StickyNote) bool {
	for _, note := range notes {
		if strings.TrimSpace(note.Text) != "" {
			return true
		}
	}
	return false
}
