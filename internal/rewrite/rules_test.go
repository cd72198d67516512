package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendHTMLPostfix(t *testing.T) {
	ctx := Context{Postfix: ".html"}

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "plain page", href: "Dog", want: "Dog.html"},
		{name: "image asset unchanged", href: "image.png", want: "image.png"},
		{name: "already suffixed", href: "Dog.html", want: "Dog.html"},
		{name: "uppercase extension", href: "Photo.JPG", want: "Photo.JPG"},
		{name: "root relative wiki link", href: "/wiki/Cat", want: "/wiki/Cat.html"},
		{name: "fragment kept", href: "Dog#Fur", want: "Dog.html#Fur"},
		{name: "query kept", href: "Dog?x=1", want: "Dog.html?x=1"},
		{name: "fragment only", href: "#top", want: "#top"},
		{name: "empty", href: "", want: ""},
		{name: "absolute http", href: "https://example.org/wiki/Cat", want: "https://example.org/wiki/Cat"},
		{name: "protocol relative", href: "//example.org/wiki/Cat", want: "//example.org/wiki/Cat"},
		{name: "mailto", href: "mailto:someone@example.org", want: "mailto:someone@example.org"},
		{name: "namespaced title", href: "Help:Contents", want: "Help:Contents.html"},
		{name: "dotted title", href: "St._Louis", want: "St._Louis.html"},
		{name: "directory link", href: "sub/", want: "sub/"},
		{name: "current directory", href: ".", want: "."},
		{name: "parent directory", href: "..", want: ".."},
		{name: "nested parent directory", href: "../..", want: "../.."},
		{name: "root relative outside wiki", href: "/w/index.php?title=Dog&oldid=1", want: "/w/index.php?title=Dog&oldid=1"},
		{name: "root relative static path", href: "/static/favicon", want: "/static/favicon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppendHTMLPostfix(tt.href, ctx))
		})
	}
}

func TestPrefixRelativeRoot(t *testing.T) {
	tests := []struct {
		name string
		root string
		href string
		want string
	}{
		{name: "document in wiki root", root: ".", href: "/wiki/Cat", want: "Cat"},
		{name: "empty root", root: "", href: "/wiki/Cat.html", want: "Cat.html"},
		{name: "nested document", root: "..", href: "/wiki/Cat.html", want: "../Cat.html"},
		{name: "trailing slash root", root: "../../", href: "/wiki/Cat", want: "../../Cat"},
		{name: "not a wiki link", root: "..", href: "/w/index.php", want: "/w/index.php"},
		{name: "relative link untouched", root: "..", href: "Cat.html", want: "Cat.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrefixRelativeRoot(tt.href, Context{RelativeRootPath: tt.root}))
		})
	}
}

func TestApply_OrderMatters(t *testing.T) {
	ctx := Context{RelativeRootPath: ".", Postfix: ".html"}

	assert.Equal(t, "Cat.html", Apply("/wiki/Cat", ctx, AppendHTMLPostfix, PrefixRelativeRoot))
	assert.Equal(t, "Cat.html", Apply("/wiki/Cat", ctx, PrefixRelativeRoot, AppendHTMLPostfix))

	nested := Context{RelativeRootPath: "..", Postfix: ".html"}
	assert.Equal(t, "../Cat.html", Apply("/wiki/Cat", nested, AppendHTMLPostfix, PrefixRelativeRoot))
	assert.Equal(t, "/wiki/Cat", Apply("/wiki/Cat", nested))
}
