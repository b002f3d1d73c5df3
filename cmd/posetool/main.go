// posetool is a CLI utility for inspecting skinned glTF models and
// evaluating animation poses.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/posekit/internal/assets"
	"github.com/Faultbox/posekit/internal/config"
	"github.com/Faultbox/posekit/internal/logger"
	"github.com/Faultbox/posekit/pkg/anim"
	"github.com/Faultbox/posekit/pkg/loader"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "joints", "bones":
		cmdJoints(args)
	case "pose":
		cmdPose(args)
	case "play":
		cmdPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`posetool - skinned glTF model inspection utility

Usage:
  posetool <command> [options] <model>

Commands:
  info <model>     Show skin, joint and clip information
  joints <model>   List the joint hierarchy with rest transforms
  pose <model>     Print skinning matrices for a clip at a given time
  play <model>     Step a clip and trace a joint's position per frame

Models are looked up in the configured search directories; bare names
also try the .gltf and .glb extensions. Run a command with -h for its
options.

Examples:
  posetool info hero.glb
  posetool joints hero
  posetool pose -clip walk -t 0.5 hero
  posetool play -clip walk -fps 30 -loop -frames 120 hero`)
}

// loadConfig merges the config file with per-command overrides.
func loadConfig(path string, debug bool) *config.Config {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	return cfg
}

// newManager initializes logging and the model search path.
func newManager(cfg *config.Config) *assets.Manager {
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mgr := assets.NewManager(&loader.Loader{Logger: logger.Log})
	for _, dir := range cfg.Assets.Dirs {
		if err := mgr.AddDir(dir); err != nil {
			logger.Warn("skipping search dir", zap.String("dir", dir), zap.Error(err))
		}
	}
	return mgr
}

func loadModel(mgr *assets.Manager, name string) *loader.Model {
	model, err := mgr.Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return model
}

// jointNames maps joint ids back to document node names.
func jointNames(model *loader.Model) []string {
	names := make([]string, model.Animator.JointCount())
	for node, joint := range model.NodeToJoint {
		if joint >= 0 && node < len(model.Doc.Nodes) {
			names[joint] = model.Doc.Nodes[node].Name
		}
	}
	for i, name := range names {
		if name == "" {
			names[i] = fmt.Sprintf("joint-%d", i)
		}
	}
	return names
}

// findClip picks the requested clip, falling back to the first one.
func findClip(model *loader.Model, name string) int {
	if name == "" {
		if len(model.Animator.Animations()) == 0 {
			fmt.Fprintln(os.Stderr, "Error: model has no animation clips")
			os.Exit(1)
		}
		return 0
	}
	clip := model.Animator.FindAnimation(name)
	if clip < 0 {
		fmt.Fprintf(os.Stderr, "Error: clip %q not found\n", name)
		os.Exit(1)
	}
	return clip
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: posetool info <model>")
		os.Exit(1)
	}

	cfg := loadConfig(*cfgPath, *debug)
	mgr := newManager(cfg)
	defer logger.Sync()

	model := loadModel(mgr, fs.Arg(0))

	fmt.Printf("Model:  %s\n", fs.Arg(0))
	fmt.Printf("Skin:   %s\n", model.SkinName)
	fmt.Printf("Joints: %d\n", model.Animator.JointCount())
	fmt.Printf("Nodes:  %d in document\n", len(model.Doc.Nodes))

	clips := model.Animator.Animations()
	if len(clips) == 0 {
		fmt.Println("Clips:  none")
		return
	}
	fmt.Println("Clips:")
	for _, clip := range clips {
		name := clip.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  %-20s %6.2fs  %d channels\n", name, clip.Duration(), len(clip.Channels))
	}
}

func cmdJoints(args []string) {
	fs := flag.NewFlagSet("joints", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: posetool joints <model>")
		os.Exit(1)
	}

	cfg := loadConfig(*cfgPath, *debug)
	mgr := newManager(cfg)
	defer logger.Sync()

	model := loadModel(mgr, fs.Arg(0))
	names := jointNames(model)

	fmt.Printf("%-4s %-20s %-7s %-26s %-32s %s\n",
		"ID", "NAME", "PARENT", "TRANSLATION", "ROTATION", "SCALE")
	for i := 0; i < model.Animator.JointCount(); i++ {
		rest := model.Animator.RestNode(i)
		parent := "-"
		if p := model.Animator.Parent(i); p >= 0 {
			parent = fmt.Sprintf("%d", p)
		}
		fmt.Printf("%-4d %-20s %-7s (%6.2f, %6.2f, %6.2f)   (%5.2f, %5.2f, %5.2f, %5.2f)   (%5.2f, %5.2f, %5.2f)\n",
			i, names[i], parent,
			rest.Translation.X, rest.Translation.Y, rest.Translation.Z,
			rest.Rotation.X, rest.Rotation.Y, rest.Rotation.Z, rest.Rotation.W,
			rest.Scale.X, rest.Scale.Y, rest.Scale.Z)
	}
}

func cmdPose(args []string) {
	fs := flag.NewFlagSet("pose", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	clipName := fs.String("clip", "", "Clip to sample (default: config or first)")
	at := fs.Float64("t", 0, "Clip time in seconds")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: posetool pose [-clip name] [-t seconds] <model>")
		os.Exit(1)
	}

	cfg := loadConfig(*cfgPath, *debug)
	mgr := newManager(cfg)
	defer logger.Sync()

	model := loadModel(mgr, fs.Arg(0))
	name := *clipName
	if name == "" {
		name = cfg.Playback.Clip
	}
	clip := findClip(model, name)

	model.Animator.Reset()
	if err := model.Animator.Animate(clip, float32(*at)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := jointNames(model)
	for i, m := range model.Animator.ComputeTransforms() {
		fmt.Printf("joint %d (%s)\n", i, names[i])
		for r := 0; r < 4; r++ {
			fmt.Printf("  %9.4f %9.4f %9.4f %9.4f\n", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
		}
	}
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	clipName := fs.String("clip", "", "Clip to play (default: config or first)")
	fps := fs.Float64("fps", 0, "Pose sampling rate (default: config)")
	speed := fs.Float64("speed", 0, "Playback speed multiplier (default: config)")
	loop := fs.Bool("loop", false, "Loop playback")
	frames := fs.Int("frames", 0, "Frames to emit (0 = one full pass)")
	joint := fs.Int("joint", 0, "Joint whose position is traced")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: posetool play [options] <model>")
		os.Exit(1)
	}

	cfg := loadConfig(*cfgPath, *debug)
	if cfg.Logging.LogFile == "" {
		cfg.Logging.LogFile = logger.DefaultLogFile
	}
	if *fps > 0 {
		cfg.Playback.FPS = *fps
	}
	if *speed > 0 {
		cfg.Playback.Speed = *speed
	}
	if *loop {
		cfg.Playback.Loop = true
	}
	if cfg.Playback.FPS <= 0 {
		fmt.Fprintln(os.Stderr, "Error: fps must be positive")
		os.Exit(1)
	}

	mgr := newManager(cfg)
	defer logger.Sync()

	model := loadModel(mgr, fs.Arg(0))
	name := *clipName
	if name == "" {
		name = cfg.Playback.Clip
	}
	clip := findClip(model, name)

	if *joint < 0 || *joint >= model.Animator.JointCount() {
		fmt.Fprintf(os.Stderr, "Error: joint %d out of range (%d joints)\n",
			*joint, model.Animator.JointCount())
		os.Exit(1)
	}

	player, err := anim.NewPlayer(model.Animator, clip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	player.Speed = float32(cfg.Playback.Speed)
	player.Loop = cfg.Playback.Loop

	dt := float32(1 / cfg.Playback.FPS)
	total := *frames
	if total <= 0 {
		total = int(math32.Ceil(player.Duration()/dt)) + 1
	}

	logger.Info("playing clip",
		zap.String("model", fs.Arg(0)),
		zap.String("clip", model.Animator.Animations()[clip].Name),
		zap.Float64("fps", cfg.Playback.FPS),
		zap.Int("frames", total))

	player.Seek(0)
	for frame := 0; frame < total; frame++ {
		if frame > 0 {
			player.Advance(dt)
		}
		m := model.Animator.ComputeTransforms()[*joint]
		fmt.Printf("%7.3f  (%9.4f, %9.4f, %9.4f)\n", player.Time(), m[12], m[13], m[14])
		if player.Done() {
			break
		}
	}
}
