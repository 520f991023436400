package services

// changeSet builds a "changed from A to B" metadata payload for update
// audit events. Only differing fields are included.
func changeSet(from, to map[string]any) map[string]any {
	changed := map[string]any{}
	for k, v := range to {
		if old, ok := from[k]; !ok || old != v {
			changed[k] = map[string]any{"from": from[k], "to": v}
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return map[string]any{"changed": changed}
}
