package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"despawn-particles/internal/material"
	"despawn-particles/internal/utils"
)

const despawnVertex = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// despawnFragment samples the fragment's sub-rectangle of the source
// texture, then applies alpha and optional grayscale.
const despawnFragment = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec2 offset;
uniform vec2 size;
uniform float alpha;
uniform float gray;
out vec4 finalColor;
void main() {
    vec4 c = texture(texture0, offset + fragTexCoord * size) * fragColor * colDiffuse;
    if (gray > 0.5) {
        float l = dot(c.rgb, vec3(0.299, 0.587, 0.114));
        c.rgb = vec3(l);
    }
    finalColor = vec4(c.rgb, c.a * alpha);
}
`

type despawnShader struct {
	shader rl.Shader
	offset int32
	size   int32
	alpha  int32
	gray   int32
}

func loadDespawnShader() *despawnShader {
	shader := rl.LoadShaderFromMemory(despawnVertex, despawnFragment)
	if !rl.IsShaderValid(shader) {
		utils.Error("Despawn shader failed to compile")
	}
	s := &despawnShader{
		shader: shader,
		offset: rl.GetShaderLocation(shader, "offset"),
		size:   rl.GetShaderLocation(shader, "size"),
		alpha:  rl.GetShaderLocation(shader, "alpha"),
		gray:   rl.GetShaderLocation(shader, "gray"),
	}
	utils.Debug("Despawn shader locations: offset=%d size=%d alpha=%d gray=%d", s.offset, s.size, s.alpha, s.gray)
	return s
}

// apply uploads a material. The shader must be active.
func (s *despawnShader) apply(m *material.Despawn) {
	u := m.Uniforms()
	rl.SetShaderValue(s.shader, s.offset, u[0:2], rl.ShaderUniformVec2)
	rl.SetShaderValue(s.shader, s.size, u[2:4], rl.ShaderUniformVec2)
	rl.SetShaderValue(s.shader, s.alpha, u[4:5], rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.gray, u[5:6], rl.ShaderUniformFloat)
}

func (s *despawnShader) unload() {
	rl.UnloadShader(s.shader)
}
