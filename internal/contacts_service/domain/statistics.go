package domain

import "time"

// Statistics is an aggregate view over every stored contact. It is computed
// on demand and never stored.
type Statistics struct {
	TotalContacts         int
	ByCategory            map[Category]int
	ByPhoneKind           map[PhoneKind]int
	MultiplePhoneContacts int
	ComputedAt            time.Time
}

// ComputeStatistics scans contacts once. Every category and phone kind is
// present in the result, with zero counts where nothing matched.
func ComputeStatistics(contacts []*Contact, at time.Time) Statistics {
	stats := Statistics{
		TotalContacts: len(contacts),
		ByCategory:    make(map[Category]int, len(Categories)),
		ByPhoneKind:   make(map[PhoneKind]int, len(PhoneKinds)),
		ComputedAt:    at,
	}
	for _, c := range Categories {
		stats.ByCategory[c] = 0
	}
	for _, k := range PhoneKinds {
		stats.ByPhoneKind[k] = 0
	}

	for _, ct := range contacts {
		stats.ByCategory[ct.Category]++
		for _, p := range ct.Phones {
			stats.ByPhoneKind[p.Kind]++
		}
		if len(ct.Phones) > 1 {
			stats.MultiplePhoneContacts++
		}
	}
	return stats
}

// Export is a full snapshot of the address book.
type Export struct {
	ExportedAt    time.Time
	TotalContacts int
	Contacts      []*Contact
}
