package cache

type bankState struct {
	BankInfo
	Blocks []Block
}

type state struct {
	name       string
	Spec       Spec
	Statistics Statistics
	Banks      []bankState
}

func (s *state) Name() string {
	return s.name
}

func (s *state) Serialize() (map[string]any, error) {
	banks := make([]map[string]any, 0, len(s.Banks))
	for _, b := range s.Banks {
		kinds := make([]string, 0, len(b.Kinds))
		for _, k := range b.Kinds {
			kinds = append(kinds, k.String())
		}

		valid := make([]map[string]any, 0, b.Occupancy)
		for _, block := range b.Blocks {
			if !block.IsValid {
				continue
			}

			valid = append(valid, map[string]any{
				"slot": block.SlotID,
				"tag":  block.Tag,
			})
		}

		banks = append(banks, map[string]any{
			"name":              b.Name,
			"kinds":             kinds,
			"num_blocks":        b.NumBlocks,
			"occupancy":         b.Occupancy,
			"replacement_order": b.ReplacementOrder,
			"valid_blocks":      valid,
		})
	}

	return map[string]any{
		"total_byte_size": s.Spec.TotalByteSize,
		"mapping":         s.Spec.Mapping.String(),
		"organization":    s.Spec.Organization.String(),
		"statistics":      s.Statistics,
		"banks":           banks,
	}, nil
}
