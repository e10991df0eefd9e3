package fleet

// Reconcile merges freshly detected serial numbers into the fleet and
// reports whether anything changed. The input may contain duplicates and
// empty strings; the fleet may be oversized or carry duplicate serials from
// a hand-edited file. Reconcile is a pure in-memory transform and cannot
// fail.
//
// The order of operations is the contract:
//
//  1. no-op unless AutoAddDetected is set
//  2. clamp MaxSize
//  3. clear duplicate serials inside the fleet (earlier slot wins)
//  4. build the unique detected list, first occurrence wins
//  5. place unknown detected serials into empty slots, ascending
//  6. append new slots for the remainder while under MaxSize
//  7. pad with defaulted empty slots up to MaxSize
//  8. truncate beyond MaxSize
//
// A slot that already holds a still-valid manual assignment is never
// disturbed.
func (c *FleetConfig) Reconcile(detected []string) bool {
	if !c.AutoAddDetected {
		return false
	}

	changed := false
	c.ClampSize()

	// Intra-fleet dedup. A later slot repeating an earlier slot's serial is
	// cleared back to an unassigned placeholder.
	for i := range c.Devices {
		if c.Devices[i].Serial == "" {
			continue
		}
		for j := i + 1; j < len(c.Devices); j++ {
			if c.Devices[j].Serial != c.Devices[i].Serial {
				continue
			}
			c.Devices[j].Serial = ""
			c.Devices[j].Name = c.AutoName("", j+1)
			if c.Devices[j].Orientation == "" {
				c.Devices[j].Orientation = DefaultOrientation(j)
			}
			c.Devices[j].Enabled = true
			changed = true
		}
	}

	// Unique detected list, preserving first-seen order.
	unique := make([]string, 0, len(detected))
	for _, s := range detected {
		if s == "" || containsString(unique, s) {
			continue
		}
		unique = append(unique, s)
	}

	hasSerial := func(s string) bool {
		for i := range c.Devices {
			if c.Devices[i].Serial != "" && c.Devices[i].Serial == s {
				return true
			}
		}
		return false
	}

	for _, s := range unique {
		if hasSerial(s) {
			continue
		}

		// Fill the first empty slot before growing the fleet.
		placed := false
		for i := 0; i < len(c.Devices) && i < c.MaxSize; i++ {
			if c.Devices[i].Serial != "" {
				continue
			}
			c.Devices[i].Serial = s
			if c.Devices[i].Orientation == "" {
				c.Devices[i].Orientation = DefaultOrientation(i)
			}
			c.Devices[i].Orientation = CanonicalOrientation(c.Devices[i].Orientation)
			if c.AutoNameFromSerial {
				c.Devices[i].Name = c.AutoName(s, i+1)
			}
			changed = true
			placed = true
			break
		}
		if placed {
			continue
		}

		if len(c.Devices) >= c.MaxSize {
			continue
		}

		slot := len(c.Devices)
		rec := DeviceRecord{
			Enabled:     true,
			Serial:      s,
			Orientation: DefaultOrientation(slot),
		}
		c.ApplyDefaults(&rec)
		if c.AutoNameFromSerial {
			rec.Name = c.AutoName(s, slot+1)
		} else {
			rec.Name = c.AutoName("", slot+1)
		}
		c.Devices = append(c.Devices, rec)
		changed = true
	}

	if c.Normalize() {
		changed = true
	}

	return changed
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
