package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veleth/moonblade/internal/asset"
	"github.com/veleth/moonblade/internal/config"
	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/game/magic"
	"github.com/veleth/moonblade/internal/model"
	"github.com/veleth/moonblade/internal/telemetry"
	"github.com/veleth/moonblade/internal/world"
)

const ConfigPath = "config/simulator.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// collider joins the registry and terrain into the engine's collision view.
type collider struct {
	*world.Registry
	*world.Terrain
}

// fxLogger narrates presentation effects the headless simulator cannot play.
type fxLogger struct{}

func (fxLogger) PlaySound(path string) { slog.Debug("sound", "path", path) }

func (fxLogger) ShakeScreen(strength int32) { slog.Debug("screen shake", "strength", strength) }

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("MOONBLADE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	tracer := telemetry.NoopTracer()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint)
		if err != nil {
			return fmt.Errorf("telemetry setup: %w", err)
		}
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutCtx); err != nil {
				slog.Warn("telemetry shutdown", "err", err)
			}
		}()
		tracer = telemetry.Tracer("simulator")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	slog.Info("simulator starting", "tick_ms", cfg.TickMs, "seed", seed)

	reg := world.NewRegistry()
	ter := world.NewTerrain(cfg.MapWidthTiles, cfg.MapHeightTiles)
	store := data.NewStore(os.DirFS(cfg.AbilityDir))

	mgr := magic.NewManager(magic.Deps{
		Source:     reg,
		Collision:  collider{reg, ter},
		Anims:      asset.NewCache(nil),
		Store:      store,
		FX:         fxLogger{},
		RNG:        rand.New(rand.NewPCG(seed, seed>>32)),
		MaxActive:  cfg.MaxActiveSprites,
		ViewTilesX: cfg.ViewTilesX,
		ViewTilesY: cfg.ViewTilesY,
		Summon: func(owner model.Combatant, file string, at model.Point) {
			slog.Info("summon requested", "owner", owner.Name(), "file", file, "at", at.Tile())
		},
		Control: func(owner, target model.Combatant, durationMs int32) {
			slog.Info("control bound", "owner", owner.Name(), "target", target.Name(), "duration_ms", durationMs)
		},
	})

	defs, err := loadAbilities(ctx, store, cfg.AbilityDir)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		slog.Info("no ability files found, using built-in demo set", "dir", cfg.AbilityDir)
		defs = demoAbilities()
	}

	hero := model.NewPlayer(1, "hero", model.ActorStats{
		Level: 10, Life: 500, Mana: 400, Stamina: 300, Attack: 25, Defense: 10,
	})
	hero.SetPosition(model.Tile{X: cfg.MapWidthTiles / 2, Y: cfg.MapHeightTiles / 2}.Center())
	reg.Add(hero)
	for i := int32(0); i < 6; i++ {
		npc := model.NewNPC(uint32(100+i), fmt.Sprintf("raider-%d", i), model.AllegianceEnemy, model.ActorStats{
			Level: 8, Life: 300, Defense: 5, Evasion: 10,
		})
		npc.SetPosition(hero.Position().Tile().Offset(4+i, (i%3)-1).Center())
		reg.Add(npc)
	}

	return simulate(ctx, cfg, tracer, mgr, reg, hero, defs)
}

// simulate runs the fixed-step loop: one ability invocation every few
// ticks, rotating through the loaded definitions.
func simulate(ctx context.Context, cfg config.Simulator, tracer trace.Tracer, mgr *magic.Manager, reg *world.Registry, hero *model.Player, defs []*data.Definition) error {
	const castEveryTicks = 10
	nextDef := 0

	for tick := 0; cfg.TickCount == 0 || tick < cfg.TickCount; tick++ {
		select {
		case <-ctx.Done():
			slog.Info("simulation interrupted", "tick", tick)
			return nil
		default:
		}

		if tick%castEveryTicks == 0 && !hero.IsDead() {
			def := defs[nextDef%len(defs)]
			nextDef++
			dest := hero.Position().Add(model.Vec{X: 1, Y: 0}, 8*model.TileSize)

			_, span := tracer.Start(ctx, "ability.invoke",
				trace.WithAttributes(
					attribute.String("ability", def.Name),
					attribute.String("kind", def.Kind.String()),
				))
			err := mgr.UseAbility(hero.Ref(), def, 1+int32(tick%5), hero.Position(), dest, model.NoRef)
			if err != nil {
				slog.Debug("invocation refused", "ability", def.Name, "err", err)
			}
			span.End()
		}

		mgr.Update(cfg.TickMs)
		reg.TickStatuses(cfg.TickMs)

		if tick%40 == 0 {
			logFrame(mgr, reg, tick)
		}
		if cfg.TickCount == 0 && mgr.ActiveCount() == 0 && tick > castEveryTicks {
			break
		}
	}

	slog.Info("simulation finished", "live_instances", mgr.ActiveCount(), "combatants", reg.Len())
	return nil
}

// logFrame walks the read-only render feed the way a renderer would.
func logFrame(mgr *magic.Manager, reg *world.Registry, tick int) {
	byState := map[magic.State]int{}
	for _, s := range mgr.Sprites() {
		byState[s.State()]++
	}
	alive := 0
	reg.Each(func(c model.Combatant) bool {
		if !c.IsDead() {
			alive++
		}
		return true
	})
	slog.Info("frame",
		"tick", tick,
		"active", byState[magic.StateActive],
		"vanishing", byState[magic.StateDestroying],
		"pending", mgr.ActiveCount()-len(mgr.Sprites()),
		"alive", alive)
}

// loadAbilities preloads every definition file under dir and returns the
// cached definitions.
func loadAbilities(ctx context.Context, store *data.Store, dir string) ([]*data.Definition, error) {
	var paths []string
	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".ini" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning ability dir %s: %w", dir, err)
	}

	if err := store.Preload(ctx, paths...); err != nil {
		return nil, fmt.Errorf("preloading abilities: %w", err)
	}
	defs := make([]*data.Definition, 0, len(paths))
	for _, p := range paths {
		if def, ok := store.Cached(p); ok {
			defs = append(defs, def)
		}
	}
	slog.Info("abilities loaded", "count", len(defs))
	return defs, nil
}

// demoAbilities is the built-in fallback set exercising a few movement
// kinds when no content directory is present.
func demoAbilities() []*data.Definition {
	return []*data.Definition{
		{
			Name: "Firebolt", Path: "demo/firebolt.ini", Kind: data.MoveFreeFly,
			Speed: 320, Damage: 30, FloorDamage: 2, Cooldown: 400,
		},
		{
			Name: "Frost Nova", Path: "demo/frostnova.ini", Kind: data.MoveCircle,
			Speed: 200, Damage: 15, Cooldown: 2000, ManaCost: 40,
			Status: data.StatusPayload{Kind: model.StatusFreeze, DurationMs: 1500, Probability: 60},
		},
		{
			Name: "Venom Wall", Path: "demo/venomwall.ini", Kind: data.MoveFixedWall,
			LifeMs: 2500, Damage: 10, ManaCost: 25, Cooldown: 3000,
			Status: data.StatusPayload{Kind: model.StatusPoison, DurationMs: 3000, Probability: 100, PoisonLevel: 2},
		},
		{
			Name: "Blessing", Path: "demo/blessing.ini", Kind: data.MoveFollowOwner,
			LifeMs: 4000, Heal: 50, HealMana: 20, ManaCost: 30, Cooldown: 5000,
		},
		{
			Name: "Chain Spark", Path: "demo/chainspark.ini", Kind: data.MoveFollowEnemy,
			Speed: 280, Damage: 20, BounceCount: 3, Cooldown: 1500, ManaCost: 20,
		},
	}
}
