package engine

import "testing"

func TestRenderTemplate(t *testing.T) {
	vars := map[string]string{
		"nome":   "Maria Santos",
		"agente": "João Pereira",
		"imovel": "T2 em Alvalade",
	}

	cases := []struct {
		name string
		tmpl string
		want string
	}{
		{
			name: "single placeholder",
			tmpl: "Olá {{nome}}!",
			want: "Olá Maria Santos!",
		},
		{
			name: "multiple placeholders",
			tmpl: "Olá {{nome}}, o agente {{agente}} vai contactá-lo sobre {{imovel}}.",
			want: "Olá Maria Santos, o agente João Pereira vai contactá-lo sobre T2 em Alvalade.",
		},
		{
			name: "unknown key renders empty",
			tmpl: "Olá {{desconhecido}}, bem-vindo.",
			want: "Olá , bem-vindo.",
		},
		{
			name: "keys are trimmed",
			tmpl: "Olá {{ nome }}!",
			want: "Olá Maria Santos!",
		},
		{
			name: "no placeholders passes through",
			tmpl: "Sem variáveis.",
			want: "Sem variáveis.",
		},
		{
			name: "non greedy matching",
			tmpl: "{{nome}} e {{agente}}",
			want: "Maria Santos e João Pereira",
		},
		{
			name: "no recursive substitution",
			tmpl: "{{nome}}",
			want: "Maria Santos",
		},
		{
			name: "empty template",
			tmpl: "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RenderTemplate(tc.tmpl, vars); got != tc.want {
				t.Errorf("RenderTemplate(%q) = %q, want %q", tc.tmpl, got, tc.want)
			}
		})
	}
}

func TestRenderTemplateNilVars(t *testing.T) {
	if got := RenderTemplate("Olá {{nome}}", nil); got != "Olá " {
		t.Errorf("expected unknown keys to vanish with nil vars, got %q", got)
	}
}
