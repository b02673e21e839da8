// Package shader holds the GLSL sources: the fullscreen quad vertex stage, the
// combined pixelation/CRT/glitch effect and the blit used to present surfaces.
package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSourceFlipGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

const blitFragmentShaderSourceGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSourceFlipGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

const blitFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ─────────────────────────────────── Effect ─────────────────────────────────────

// The effect is written against WebGL2 and translated for the host GL. Textures are
// uploaded bottom row first, so uv (0,0) is the bottom-left of the element, matching
// gl_FragCoord and mousePx.
const effectPreamble = `#version 300 es
precision highp float;
precision highp int;

in vec2 frag_uv;
out vec4 fragColor;

uniform sampler2D u_texture;
uniform sampler2D interactionTexture;
uniform sampler2D interactionGradientTexture;

uniform float time;
uniform vec2  resolution;
uniform float aspect;
uniform float pixelRatio;
uniform float intensity;
uniform float textureAspect;
uniform bool  aspectCorrectionEnabled;
uniform int   isText;

uniform bool  interactionEnabled;
uniform int   interactionShape;
uniform float radiusPx;
uniform vec2  mousePx;
uniform float effectScale;
uniform bool  hasCustomInteractionTexture;
uniform float interactionTextureAspect;

uniform bool  pixelationEnabled;
uniform float pixelSize;
uniform int   pixelShape;
uniform int   bitDepth;
uniform int   dithering;
uniform int   pixelDirection;
uniform bool  pixelSizeInteractive;

uniform bool  crtEnabled;
uniform float scanlineIntensity;
uniform float scanlineThickness;
uniform float scanlineCount;
uniform float brightness;
uniform float phosphorGlow;
uniform float curvature;
uniform float chromaticAberration;
uniform bool  flicker;
uniform float flickerIntensity;
uniform bool  lineMovement;
uniform float lineSpeed;
uniform int   lineDirection;
uniform bool  scanlinesInteractive;
uniform bool  chromaticAberrationInteractive;
uniform bool  phosphorGlowInteractive;
uniform bool  curvatureInteractive;

uniform bool  glitchEnabled;
uniform float rgbShift;
uniform float digitalNoise;
uniform float lineDisplacement;
uniform float bitCrushDepth;
uniform float signalDropoutFreq;
uniform float signalDropoutSize;
uniform float syncErrorFreq;
uniform float syncErrorAmount;
uniform float interferenceSpeed;
uniform float interferenceIntensity;
uniform float frameGhostAmount;
uniform float stutterFreq;
uniform float datamoshStrength;
uniform bool  rgbShiftInteractive;
uniform bool  digitalNoiseInteractive;
uniform bool  lineDisplacementInteractive;
uniform bool  bitCrushInteractive;
uniform bool  signalDropoutInteractive;
uniform bool  syncErrorsInteractive;
uniform bool  interferenceLinesInteractive;
uniform bool  frameGhostingInteractive;
uniform bool  stutterFreezeInteractive;
uniform bool  datamoshingInteractive;
`

const effectBody = `
float hash(vec2 p) {
    p = fract(p * vec2(123.34, 456.21));
    p += dot(p, p + 45.32);
    return fract(p.x * p.y);
}

float hash1(float n) { return fract(sin(n) * 43758.5453123); }

// shapeDistance is 0 at the pointer and 1 on the edge of the interaction area.
float shapeDistance(vec2 d) {
    vec2 a = abs(d) / max(radiusPx, 1.0);
    if (interactionShape == 1) return max(a.x, a.y);
    if (interactionShape == 2) return a.x + a.y;
    if (interactionShape == 3) return min(max(a.x, a.y * 3.0), max(a.x * 3.0, a.y));
    if (interactionShape == 4) return min(max(a.x, a.y * 5.0), max(a.x * 5.0, a.y));
    return length(d) / max(radiusPx, 1.0);
}

float interactionMask(vec2 px) {
    if (!interactionEnabled) return 0.0;
    vec2 d = px - mousePx;
    float m;
    if (interactionShape == 5 && hasCustomInteractionTexture) {
        vec2 tuv = d / (2.0 * max(radiusPx, 1.0));
        tuv.x /= interactionTextureAspect;
        tuv += 0.5;
        if (any(lessThan(tuv, vec2(0.0))) || any(greaterThan(tuv, vec2(1.0)))) return 0.0;
        float inside = texture(interactionTexture, tuv).a;
        float edge = texture(interactionGradientTexture, tuv).a;
        m = inside * smoothstep(0.0, 0.5, edge);
    } else {
        m = 1.0 - smoothstep(0.75, 1.0, shapeDistance(d));
    }
    return m * effectScale;
}

// amount returns how strongly a parameter applies at this fragment.
float amount(bool interactive, float mask) {
    if (interactionEnabled && interactive) return mask;
    return 1.0;
}

vec2 fitUV(vec2 uv) {
    if (!aspectCorrectionEnabled) return uv;
    float boxAspect = max(aspect, 1e-4);
    if (textureAspect > boxAspect) {
        uv.y = (uv.y - 0.5) * textureAspect / boxAspect + 0.5;
    } else {
        uv.x = (uv.x - 0.5) * boxAspect / textureAspect + 0.5;
    }
    return uv;
}

vec4 source(vec2 uv) {
    vec2 f = fitUV(uv);
    if (any(lessThan(f, vec2(0.0))) || any(greaterThan(f, vec2(1.0)))) return vec4(0.0);
    return texture(u_texture, f);
}

vec2 barrel(vec2 uv, float k) {
    vec2 c = uv * 2.0 - 1.0;
    vec2 off = c.yx / max(k, 0.001);
    c += c * off * off;
    return c * 0.5 + 0.5;
}

float bayer4(vec2 p) {
    int x = int(mod(p.x, 4.0));
    int y = int(mod(p.y, 4.0));
    int idx = x + y * 4;
    int m[16] = int[16](0, 8, 2, 10, 12, 4, 14, 6, 3, 11, 1, 9, 15, 7, 13, 5);
    return float(m[idx]) / 16.0 - 0.5;
}

vec3 quantize(vec3 c, float levels, vec2 cell) {
    float d = 0.0;
    if (dithering == 2) d = bayer4(cell);
    else if (dithering == 1) d = hash(cell) - 0.5;
    return floor(c * (levels - 1.0) + 0.5 + d) / (levels - 1.0);
}

float pixelShapeMask(vec2 local) {
    vec2 c = local * 2.0 - 1.0;
    if (pixelShape == 1) return step(length(c), 1.0);
    if (pixelShape == 2) return step(abs(c.x) + abs(c.y), 1.0);
    if (pixelShape == 3) return step(min(abs(c.x), abs(c.y)), 0.25);
    if (pixelShape == 4) return step(min(abs(c.x), abs(c.y)), 0.4) * step(max(abs(c.x), abs(c.y)), 0.9);
    return 1.0;
}

void main() {
    vec2 px = gl_FragCoord.xy / max(pixelRatio, 1e-4);
    vec2 uv = px / max(resolution, vec2(1.0));
    float mask = interactionMask(px);
    float t = time;
    vec4 base = source(uv);

    vec2 suv = uv;
    float shapeAlpha = 1.0;

    if (crtEnabled && curvature > 0.0) {
        vec2 warped = barrel(suv, curvature);
        suv = mix(suv, warped, amount(curvatureInteractive, mask));
        if (any(lessThan(suv, vec2(0.0))) || any(greaterThan(suv, vec2(1.0)))) {
            fragColor = vec4(0.0);
            return;
        }
    }

    if (glitchEnabled) {
        if (stutterFreq > 0.0) {
            float s = amount(stutterFreezeInteractive, mask);
            float frozen = floor(t * 8.0) / 8.0;
            t = mix(t, frozen, step(1.0 - stutterFreq * s, hash1(floor(t * 2.0))));
        }
        float row = floor(suv.y * resolution.y / 4.0);
        if (lineDisplacement > 0.0) {
            float r = hash(vec2(row, floor(t * 10.0)));
            suv.x += (r - 0.5) * lineDisplacement * step(0.9, r) * amount(lineDisplacementInteractive, mask);
        }
        if (syncErrorFreq > 0.0) {
            float e = step(1.0 - syncErrorFreq, hash1(floor(t * 15.0)));
            suv.x += e * syncErrorAmount * sin(suv.y * 40.0 + t * 20.0) * amount(syncErrorsInteractive, mask);
        }
        if (datamoshStrength > 0.0) {
            vec2 block = floor(suv * resolution / 16.0);
            float r = hash(block + floor(t * 4.0));
            vec2 drift = (vec2(hash(block + 1.7), hash(block + 3.1)) - 0.5) * 0.05;
            suv += drift * step(1.0 - datamoshStrength * 0.3, r) * amount(datamoshingInteractive, mask);
        }
    }

    if (pixelationEnabled && pixelSize > 1.0) {
        float size = pixelSize;
        if (interactionEnabled && pixelSizeInteractive) size = max(1.0, mix(1.0, pixelSize, mask));
        vec2 cellSize = vec2(size);
        if (pixelDirection == 1) cellSize.y = 1.0;
        if (pixelDirection == 2) cellSize.x = 1.0;
        vec2 p = suv * resolution;
        vec2 cell = floor(p / cellSize);
        vec2 local = fract(p / cellSize);
        suv = (cell + 0.5) * cellSize / resolution;
        if (isText == 0) shapeAlpha = pixelShapeMask(local);
    }

    vec4 color;
    float ca = crtEnabled ? chromaticAberration * amount(chromaticAberrationInteractive, mask) : 0.0;
    float rs = glitchEnabled ? rgbShift * 0.05 * amount(rgbShiftInteractive, mask) : 0.0;
    if (rgbShift > 0.0 && glitchEnabled) rs *= 0.5 + 0.5 * sin(t * 3.0);
    float split = ca + rs;
    if (split > 0.0) {
        vec4 c = source(suv);
        color = vec4(source(suv + vec2(split, 0.0)).r, c.g, source(suv - vec2(split, 0.0)).b, c.a);
    } else {
        color = source(suv);
    }

    if (glitchEnabled && frameGhostAmount > 0.0) {
        vec4 ghost = source(suv + vec2(0.01 * sin(t), 0.0));
        color = mix(color, ghost, frameGhostAmount * 0.3 * amount(frameGhostingInteractive, mask));
    }

    if (pixelationEnabled && bitDepth > 0) {
        float levels = bitDepth == 1 ? 2.0 : (bitDepth == 2 ? 16.0 : 256.0);
        color.rgb = quantize(color.rgb, levels, floor(suv * resolution));
    }

    if (glitchEnabled) {
        if (bitCrushDepth > 0.0) {
            float levels = exp2(max(bitCrushDepth, 1.0));
            vec3 crushed = floor(color.rgb * levels) / levels;
            color.rgb = mix(color.rgb, crushed, amount(bitCrushInteractive, mask));
        }
        if (digitalNoise > 0.0) {
            float n = hash(px + fract(t) * 100.0) - 0.5;
            color.rgb += n * digitalNoise * amount(digitalNoiseInteractive, mask);
        }
        if (signalDropoutFreq > 0.0) {
            float band = floor(uv.y / max(signalDropoutSize, 0.01));
            float drop = step(1.0 - signalDropoutFreq, hash(vec2(band, floor(t * 6.0))));
            color.rgb = mix(color.rgb, vec3(hash(px + t)), drop * amount(signalDropoutInteractive, mask));
        }
        if (interferenceIntensity > 0.0) {
            float wave = sin(uv.y * 120.0 + t * interferenceSpeed * 10.0);
            color.rgb += wave * 0.1 * interferenceIntensity * amount(interferenceLinesInteractive, mask);
        }
    }

    if (crtEnabled) {
        float s = amount(scanlinesInteractive, mask);
        float lines = suv.y;
        if (lineMovement) {
            float shift = t * lineSpeed * 0.05;
            if (lineDirection == 0) lines = suv.y - shift;
            else if (lineDirection == 1) lines = suv.y + shift;
            else if (lineDirection == 2) lines = suv.x + shift;
            else lines = suv.x - shift;
        }
        float scan = 0.5 + 0.5 * sin(lines * scanlineCount * 6.28318);
        scan = smoothstep(0.0, max(scanlineThickness, 0.01), scan);
        color.rgb *= mix(1.0, mix(1.0 - scanlineIntensity, 1.0, scan), s);

        vec3 glow = source(suv + vec2(1.0, 0.0) / resolution).rgb + source(suv - vec2(1.0, 0.0) / resolution).rgb;
        color.rgb += glow * 0.5 * phosphorGlow * 0.25 * amount(phosphorGlowInteractive, mask);
        color.rgb *= brightness;
        if (flicker) {
            color.rgb *= 1.0 - flickerIntensity * 0.1 * hash1(floor(t * 60.0));
        }
    }

    color.rgb = clamp(color.rgb, 0.0, 1.0);
    color.a *= shapeAlpha;
    fragColor = mix(base, color, clamp(intensity, 0.0, 1.0));
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetBlitFragmentShader(flip, isGLES bool) string {
	if isGLES {
		if flip {
			return blitFragmentShaderSourceFlipGLES
		}
		return blitFragmentShaderSourceGLES
	}
	if flip {
		return blitFragmentShaderSourceFlipGL
	}
	return blitFragmentShaderSourceGL
}

// GetEffectFragmentShader returns the WebGL2 source of the combined effect.
func GetEffectFragmentShader() string {
	return effectPreamble + effectBody
}

// EffectSamplers lists the sampler uniforms of the effect in texture unit order.
var EffectSamplers = []string{"u_texture", "interactionTexture", "interactionGradientTexture"}
