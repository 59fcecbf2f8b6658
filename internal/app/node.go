package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebuild/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/prebuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prebuild/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/prebuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prebuild/internal/adapters/targets"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prebuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/prebuild/internal/engine/prebuilder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			targets.NodeID,
			prebuilder.NodeID,
			fs.ProviderNodeID,
			fs.ArtifactFSNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	targetProvider, err := graft.Dep[ports.TargetProvider](ctx)
	if err != nil {
		return nil, err
	}

	orchestrator, err := graft.Dep[*prebuilder.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[ports.OutputGroupProvider](ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := graft.Dep[ports.ArtifactFS](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, targetProvider, orchestrator, provider, artifacts, hasher, store, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Tracer: tracer,
	}, nil
}
