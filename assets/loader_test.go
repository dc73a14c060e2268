package assets

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoadBundleEmbedded(t *testing.T) {
	b, err := LoadBundle(context.Background(), LoaderOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Model == nil || b.Model.Name != "laptop" {
		t.Fatalf("model = %+v", b.Model)
	}
	if b.Scene.Clip != "open" || len(b.Script) == 0 {
		t.Fatalf("scene clip %q, script %d bytes", b.Scene.Clip, len(b.Script))
	}
}

func TestLoadBundleModelOverrideFailure(t *testing.T) {
	_, err := LoadBundle(context.Background(), LoaderOptions{ModelPath: "missing.yaml"})
	if !errors.Is(err, ErrAssetLoad) {
		t.Fatalf("err = %v, want ErrAssetLoad", err)
	}
}

func TestLoadBundleMissingScene(t *testing.T) {
	_, err := LoadBundle(context.Background(), LoaderOptions{SceneFile: "no_such_scene.yaml"})
	if !errors.Is(err, ErrAssetLoad) {
		t.Fatalf("err = %v, want ErrAssetLoad", err)
	}
}

func TestLoaderPoll(t *testing.T) {
	l := StartLoader(context.Background(), LoaderOptions{})

	deadline := time.Now().Add(5 * time.Second)
	var res Result
	for {
		r, ok := l.Poll()
		if ok {
			res = r
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("loader did not finish")
		}
		time.Sleep(time.Millisecond)
	}
	if res.Err != nil || res.Bundle.Model == nil {
		t.Fatalf("result = %+v", res)
	}

	again, ok := l.Poll()
	if !ok || again.Bundle.Model != res.Bundle.Model {
		t.Fatalf("poll should keep returning the same result")
	}
}

func TestLoaderWaitFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	l := StartLoader(ctx, LoaderOptions{ModelPath: "missing.yaml"})
	r, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !errors.Is(r.Err, ErrAssetLoad) || r.Bundle.Model != nil {
		t.Fatalf("result = %+v", r)
	}
}

func TestNilLoader(t *testing.T) {
	var l *Loader
	if _, ok := l.Poll(); ok {
		t.Fatalf("nil loader should never be ready")
	}
}
