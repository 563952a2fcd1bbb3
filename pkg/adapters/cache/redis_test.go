package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

func TestCompressedPayload(t *testing.T) {
	p := domain.DefaultProfile()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	packed, err := compress(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) >= len(raw) {
		t.Errorf("compressed payload is %d bytes, raw is %d", len(packed), len(raw))
	}

	unpacked, err := decompress(packed)
	if err != nil {
		t.Fatal(err)
	}
	var got domain.Profile
	if err := json.Unmarshal(unpacked, &got); err != nil {
		t.Fatal(err)
	}
	if got.Username != p.Username || len(got.Links) != len(p.Links) || len(got.FeaturedVideos) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}

	if out, err := decompress(nil); err != nil || out != nil {
		t.Errorf("empty payload = %v, %v", out, err)
	}
	if _, err := decompress([]byte("not gzip")); err == nil {
		t.Error("expected error for a non-gzip payload")
	}
}

func TestUnreachableRedisIsAnError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	p, err := c.Get(ctx, "hemerald")
	if err == nil {
		t.Fatal("expected an error from an unreachable server")
	}
	if p != nil {
		t.Errorf("profile = %+v, want nil", p)
	}
	if err := c.Set(ctx, "hemerald", &domain.Profile{Username: "hemerald"}); err == nil {
		t.Error("expected Set to fail")
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	defer c.Close()
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	p, err := c.Get(ctx, "hemerald")
	if err != nil || p != nil {
		t.Fatalf("miss = %+v, %v; want nil, nil", p, err)
	}

	want := domain.DefaultProfile()
	want.Bio = "cached bio"
	if err := c.Set(ctx, "hemerald", &want); err != nil {
		t.Fatal(err)
	}

	const key = "creator_profile_hemerald"
	if !mr.Exists(key) {
		t.Fatalf("key %q not written; keys = %v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}
	raw, err := mr.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := decompress([]byte(raw)); err != nil {
		t.Errorf("stored value is not gzip: %v", err)
	}

	got, err := c.Get(ctx, "hemerald")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Bio != "cached bio" || len(got.Links) != len(want.Links) {
		t.Errorf("Get = %+v", got)
	}

	mr.FastForward(time.Hour + time.Second)
	if p, err := c.Get(ctx, "hemerald"); err != nil || p != nil {
		t.Errorf("expired entry = %+v, %v; want a miss", p, err)
	}
}

func TestRedisCacheWithoutTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	defer c.Close()

	if err := c.Set(context.Background(), "hemerald", &domain.Profile{Username: "hemerald"}); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("creator_profile_hemerald"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}
