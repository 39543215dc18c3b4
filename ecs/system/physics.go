package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

// PhysicsSystem integrates free rigid bodies in 3D and uses a Chipmunk
// space as the overlap broadphase. Every collider is mirrored as a circle
// on the ground plane (world X/Z mapped to cp X/Y); vertical extents are
// checked separately. Trigger colliders emit a TriggerEnter event on the
// first tick they overlap another collider.
type PhysicsSystem struct {
	space *cp.Space

	Gravity  float64
	GroundY  float64
	Friction float64
	DT       float64

	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	contacts      map[contactPair]struct{}
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	minY   float64
	maxY   float64
}

type contactPair struct {
	trigger ecs.Entity
	other   ecs.Entity
}

func NewPhysicsSystem(gravity, groundY, friction float64) *PhysicsSystem {
	return &PhysicsSystem{
		space:         cp.NewSpace(),
		Gravity:       gravity,
		GroundY:       groundY,
		Friction:      friction,
		DT:            common.DeltaTime,
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
		contacts:      make(map[contactPair]struct{}),
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.integrate(w)
	ps.cleanupEntities(w)
	ps.syncColliders(w)
	ps.detectTriggers(w)
}

func (ps *PhysicsSystem) integrate(w *ecs.World) {
	dt := ps.DT
	ecs.ForEach2(w, component.RigidBodyComponent, component.TransformComponent, func(e ecs.Entity, body *component.RigidBody, t *component.Transform) {
		if body.Kinematic || t.Parent != 0 {
			return
		}

		v := body.Velocity
		if body.UseGravity {
			v = v.Add(mgl64.Vec3{0, ps.Gravity * dt, 0})
		}
		pos := t.Position.Add(v.Mul(dt))

		body.Grounded = false
		if pos.Y() <= ps.GroundY {
			pos[1] = ps.GroundY
			if v.Y() < 0 {
				v[1] = 0
			}
			body.Grounded = true
		}

		wv := body.AngularVelocity
		if body.Grounded {
			damp := math.Max(0, 1-ps.Friction*dt)
			v[0] *= damp
			v[2] *= damp
			wv = wv.Mul(damp)
		}

		t.Position = pos
		t.Rotation = common.IntegrateRotation(t.Rotation, wv, dt)
		body.Velocity = v
		body.AngularVelocity = wv
	})
}

func (ps *PhysicsSystem) syncColliders(w *ecs.World) {
	for _, e := range w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		col, ok := ecs.Get(w, e, component.ColliderComponent)
		if !ok {
			continue
		}
		pose, ok := WorldPose(w, e)
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil || info.radius != col.Radius {
			ps.removeEntity(e)
			info = ps.createBodyInfo(e, col)
		}
		info.shape.SetSensor(col.Trigger)
		info.minY = pose.Position.Y()
		info.maxY = pose.Position.Y() + col.Height
		info.body.SetPosition(cp.Vector{X: pose.Position.X(), Y: pose.Position.Z()})
	}
	// Mirrored bodies are kinematic with zero velocity, so stepping only
	// refreshes shape bounds and the spatial index.
	ps.space.Step(ps.DT)
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, col *component.Collider) *bodyInfo {
	radius := col.Radius
	if radius <= 0 {
		radius = 0.5
	}
	body := ps.space.AddBody(cp.NewKinematicBody())
	shape := ps.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	info := &bodyInfo{body: body, shape: shape, radius: col.Radius}
	ps.entities[e] = info
	ps.shapeToEntity[shape] = e
	return info
}

func (ps *PhysicsSystem) detectTriggers(w *ecs.World) {
	current := make(map[contactPair]struct{}, len(ps.contacts))

	for _, e := range w.Query(component.ColliderComponent.Kind()) {
		col, ok := ecs.Get(w, e, component.ColliderComponent)
		if !ok || !col.Trigger {
			continue
		}
		info := ps.entities[e]
		if info == nil {
			continue
		}

		var hits []ecs.Entity
		ps.space.ShapeQuery(info.shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
			other, ok := ps.shapeToEntity[shape]
			if !ok || other == e {
				return
			}
			oi := ps.entities[other]
			if oi == nil || oi.maxY < info.minY || oi.minY > info.maxY {
				return
			}
			hits = append(hits, other)
		})

		// Spatial index order is not stable; report in entity order.
		sortEntities(hits)
		for _, other := range hits {
			pair := contactPair{trigger: e, other: other}
			current[pair] = struct{}{}
			if _, seen := ps.contacts[pair]; seen {
				continue
			}
			w.Events().Push(ecs.Event{Type: ecs.EventTriggerEnter, Data: ecs.TriggerEnterEvent{Trigger: e, Other: other}})
		}
	}

	ps.contacts = current
}

// Overlapping reports whether a and b overlapped during the last update.
func (ps *PhysicsSystem) Overlapping(a, b ecs.Entity) bool {
	if ps == nil {
		return false
	}
	_, ab := ps.contacts[contactPair{trigger: a, other: b}]
	_, ba := ps.contacts[contactPair{trigger: b, other: a}]
	return ab || ba
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.ColliderComponent) {
			continue
		}
		ps.removeEntity(e)
	}
}

func (ps *PhysicsSystem) removeEntity(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapeToEntity, info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
	for pair := range ps.contacts {
		if pair.trigger == e || pair.other == e {
			delete(ps.contacts, pair)
		}
	}
}
