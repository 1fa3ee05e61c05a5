package renderer

// pointShaderSource renders particles as camera-facing billboard quads. The
// vertex stage pulls the particle from a storage buffer by instance index and
// expands one of six quad corners along the camera's right/up basis. The
// fragment stage shapes the quad into a soft radial sprite: a tight gaussian
// core plus a wider halo scaled by the per-particle glow term, output
// premultiplied for the One / OneMinusSrcAlpha blend state.
const pointShaderSource = `
struct Camera {
    view_proj: mat4x4<f32>,
    right: vec4<f32>,
    up: vec4<f32>,
};

struct Point {
    pos_size: vec4<f32>,
    color_glow: vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera: Camera;
@group(1) @binding(0) var<storage, read> points: array<Point>;

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec3<f32>,
    @location(2) glow: f32,
};

@vertex
fn vs_main(
    @builtin(vertex_index) vertex_index: u32,
    @builtin(instance_index) instance_index: u32,
) -> VertexOutput {
    var corners = array<vec2<f32>, 6>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>(1.0, -1.0),
        vec2<f32>(-1.0, 1.0),
        vec2<f32>(-1.0, 1.0),
        vec2<f32>(1.0, -1.0),
        vec2<f32>(1.0, 1.0),
    );

    let p = points[instance_index];
    let corner = corners[vertex_index];
    let offset = (camera.right.xyz * corner.x + camera.up.xyz * corner.y) * p.pos_size.w;
    let world = p.pos_size.xyz + offset;

    var out: VertexOutput;
    out.clip_position = camera.view_proj * vec4<f32>(world, 1.0);
    out.uv = corner;
    out.color = p.color_glow.rgb;
    out.glow = p.color_glow.a;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let d = length(in.uv);
    if d > 1.0 {
        discard;
    }
    let core = exp(-d * d * 5.0);
    let halo = exp(-d * 2.5) * in.glow * 0.6;
    let intensity = core + halo;
    let alpha = clamp(intensity, 0.0, 1.0);
    return vec4<f32>(in.color * intensity, alpha);
}
`

// meshShaderSource renders instanced ornament meshes. The vertex stage pulls
// the model matrix and color from a storage buffer by instance index; the
// fragment stage applies a fixed-direction lambert term with an ambient
// floor.
const meshShaderSource = `
struct Camera {
    view_proj: mat4x4<f32>,
    right: vec4<f32>,
    up: vec4<f32>,
};

struct Instance {
    model: mat4x4<f32>,
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera: Camera;
@group(1) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_normal: vec3<f32>,
    @location(1) color: vec3<f32>,
};

@vertex
fn vs_main(
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @builtin(instance_index) instance_index: u32,
) -> VertexOutput {
    let inst = instances[instance_index];
    let world = inst.model * vec4<f32>(position, 1.0);

    var out: VertexOutput;
    out.clip_position = camera.view_proj * world;
    out.world_normal = (inst.model * vec4<f32>(normal, 0.0)).xyz;
    out.color = inst.color.rgb;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let light_dir = normalize(vec3<f32>(0.4, 0.8, 0.45));
    let n = normalize(in.world_normal);
    let diffuse = max(dot(n, light_dir), 0.0);
    let ambient = 0.22;
    let lit = in.color * (ambient + (1.0 - ambient) * diffuse);
    return vec4<f32>(lit, 1.0);
}
`
