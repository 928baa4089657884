package systems

import "github.com/pthm-cable/pinflow/config"

// Params holds the physics constants used by the hot loops.
// Copied out of config once per level load so steps never touch the global.
type Params struct {
	Gravity          float64
	LavaGravityScale float64
	RiseRate         float64
	Damping          float64
	Restitution      float64
	WallMargin       float64
	ReactionRadius   float64
	RepulsionRadius  float64
	RepulsionForce   float64
	SteamMass        float64
	ArenaTop         float64
	ArenaBottom      float64
}

// MonsterParams holds hazard motion constants.
type MonsterParams struct {
	Gravity     float64
	Damping     float64
	Restitution float64
	WallMargin  float64
	ArenaBottom float64
}

// ParamsFromConfig extracts particle physics constants from cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	p := cfg.Physics
	return Params{
		Gravity:          p.Gravity,
		LavaGravityScale: p.LavaGravityScale,
		RiseRate:         p.RiseRate,
		Damping:          p.Damping,
		Restitution:      p.Restitution,
		WallMargin:       p.WallMargin,
		ReactionRadius:   p.ReactionRadius,
		RepulsionRadius:  p.RepulsionRadius,
		RepulsionForce:   p.RepulsionForce,
		SteamMass:        p.SteamMass,
		ArenaTop:         cfg.Arena.Top,
		ArenaBottom:      cfg.Arena.Bottom,
	}
}

// MonsterParamsFromConfig extracts hazard motion constants from cfg.
func MonsterParamsFromConfig(cfg *config.Config) MonsterParams {
	return MonsterParams{
		Gravity:     cfg.Monsters.Gravity,
		Damping:     cfg.Monsters.Damping,
		Restitution: cfg.Monsters.Restitution,
		WallMargin:  cfg.Physics.WallMargin,
		ArenaBottom: cfg.Arena.Bottom,
	}
}
