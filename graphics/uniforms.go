package graphics

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformInt
	UniformBool
	UniformVec2
	UniformTexture
)

// Uniform is one named shader parameter value.
type Uniform struct {
	Kind    UniformKind
	Float   float32
	Int     int32
	Vec2    mgl32.Vec2
	Texture Texture
}

// UniformSet maps parameter names to their current values. Version increases on
// every write that changes a value.
type UniformSet struct {
	values  map[string]Uniform
	version uint64
}

func NewUniformSet() *UniformSet {
	return &UniformSet{values: make(map[string]Uniform)}
}

func (u *UniformSet) set(name string, v Uniform) {
	if old, ok := u.values[name]; ok && old == v {
		return
	}
	u.values[name] = v
	u.version++
}

func (u *UniformSet) SetFloat(name string, v float64) {
	u.set(name, Uniform{Kind: UniformFloat, Float: float32(v)})
}

func (u *UniformSet) SetInt(name string, v int) {
	u.set(name, Uniform{Kind: UniformInt, Int: int32(v)})
}

func (u *UniformSet) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	u.set(name, Uniform{Kind: UniformBool, Int: i})
}

func (u *UniformSet) SetVec2(name string, v mgl32.Vec2) {
	u.set(name, Uniform{Kind: UniformVec2, Vec2: v})
}

// SetTexture binds a sampler uniform. A nil texture removes the binding.
func (u *UniformSet) SetTexture(name string, t Texture) {
	if t == nil {
		if _, ok := u.values[name]; ok {
			delete(u.values, name)
			u.version++
		}
		return
	}
	u.set(name, Uniform{Kind: UniformTexture, Texture: t})
}

func (u *UniformSet) Get(name string) (Uniform, bool) {
	v, ok := u.values[name]
	return v, ok
}

func (u *UniformSet) Float(name string) float64 { return float64(u.values[name].Float) }
func (u *UniformSet) Int(name string) int       { return int(u.values[name].Int) }
func (u *UniformSet) Bool(name string) bool     { return u.values[name].Int != 0 }
func (u *UniformSet) Vec2(name string) mgl32.Vec2 {
	return u.values[name].Vec2
}
func (u *UniformSet) Version() uint64 { return u.version }
func (u *UniformSet) Len() int        { return len(u.values) }

// Each visits the uniforms in name order.
func (u *UniformSet) Each(fn func(name string, v Uniform)) {
	names := make([]string, 0, len(u.values))
	for n := range u.values {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fn(n, u.values[n])
	}
}
