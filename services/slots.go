package services

import "fmt"

type SlotPolicy struct {
	OpenHour        int
	CloseHour       int
	IntervalMinutes int
}

func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{OpenHour: 9, CloseHour: 17, IntervalMinutes: 30}
}

// Catalog is the same for every doctor and every date.
func (p SlotPolicy) Catalog() []string {
	return GenerateSlots(p.OpenHour, p.CloseHour, p.IntervalMinutes)
}

func (p SlotPolicy) Contains(hhmm string) bool {
	for _, s := range p.Catalog() {
		if s == hhmm {
			return true
		}
	}
	return false
}

func DefaultCatalog() []string {
	return DefaultSlotPolicy().Catalog()
}

/*
* Walk from startHour to endHour in interval minute steps
* Every step start becomes an "HH:MM" slot, the last slot may run past endHour
 */
func GenerateSlots(startHour, endHour, intervalMinutes int) []string {
	if intervalMinutes <= 0 || startHour >= endHour {
		return []string{}
	}
	slots := make([]string, 0, ((endHour-startHour)*60+intervalMinutes-1)/intervalMinutes)
	for t := startHour * 60; t < endHour*60; t += intervalMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return slots
}

// FilterAvailable keeps the catalog order and drops every booked time.
func FilterAvailable(catalog, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}
	out := make([]string, 0, len(catalog))
	for _, s := range catalog {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
