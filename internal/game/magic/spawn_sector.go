package magic

// The compass-fan family: sectors around a center direction plus the full
// heart and spiral traversals.

// sectorIndices returns the 32-way compass indices of a fan: the center
// direction (8-way quantized, expanded to 32) plus symmetric pairs of
// side directions, one step apart.
func sectorIndices(aim32 int, pairs int) []int {
	idx := make([]int, 0, 2*pairs+1)
	idx = append(idx, aim32)
	for k := 1; k <= pairs; k++ {
		idx = append(idx,
			(aim32-k+DirCount32)%DirCount32,
			(aim32+k)%DirCount32)
	}
	return idx
}

// spawnSector fans instances around the quantized aim direction. The
// side-pair count grows by level in steps of 3; all fire at once.
func spawnSector(m *Manager, inv *invocation) []*Sprite {
	center := Expand8To32(Quantize8(inv.aim))
	indices := sectorIndices(center, sectorPairs(inv.level))

	sprites := make([]*Sprite, 0, len(indices))
	for _, i := range indices {
		sprites = append(sprites, m.newSprite(inv, inv.origin, Dir32(i), inv.def.Speed, 0))
	}
	return sprites
}

// spawnRandomSector is the sector fan with an independent random spawn
// delay per instance.
func spawnRandomSector(m *Manager, inv *invocation) []*Sprite {
	center := Expand8To32(Quantize8(inv.aim))
	indices := sectorIndices(center, sectorPairs(inv.level))

	sprites := make([]*Sprite, 0, len(indices))
	for _, i := range indices {
		delay := m.rng.Int32N(randomSectorMaxMs)
		sprites = append(sprites, m.newSprite(inv, inv.origin, Dir32(i), inv.def.Speed, delay))
	}
	return sprites
}

// spawnHeart traverses the full compass with a symmetric delay pattern:
// the south index fires first and the wave sweeps both ways toward north,
// drawing the two lobes of the heart.
func spawnHeart(m *Manager, inv *invocation) []*Sprite {
	sprites := make([]*Sprite, 0, DirCount32)
	for i := range DirCount32 {
		steps := min(i, DirCount32-i)
		delay := int32(steps) * heartStepMs
		sprites = append(sprites, m.newSprite(inv, inv.origin, Dir32(i), inv.def.Speed, delay))
	}
	return sprites
}

// spawnSpiral traverses the compass progressively clockwise, one delay
// step per index, producing the rotating spiral.
func spawnSpiral(m *Manager, inv *invocation) []*Sprite {
	start := Quantize32(inv.aim)
	sprites := make([]*Sprite, 0, DirCount32)
	for i := range DirCount32 {
		idx := (start + i) % DirCount32
		sprites = append(sprites, m.newSprite(inv, inv.origin, Dir32(idx), inv.def.Speed, int32(i)*spiralStepMs))
	}
	return sprites
}
