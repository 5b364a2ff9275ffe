/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package gate

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLDocument is a Document over a parsed HTML tree. Each script node is
// wrapped at most once so interception per element stays idempotent.
type HTMLDocument struct {
	root        *html.Node
	interceptor Interceptor
	wrappers    map[*html.Node]*HTMLScript
}

// ParseDocument parses the host page.
func ParseDocument(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &HTMLDocument{
		root:     root,
		wrappers: make(map[*html.Node]*HTMLScript),
	}, nil
}

// Render writes the current document tree.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Scripts returns every script element in document order.
func (d *HTMLDocument) Scripts() []ScriptElement {
	var out []ScriptElement
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			out = append(out, d.wrap(n))
		}
	})
	return out
}

// AppendScript creates a fresh script element at the end of the body and
// returns it. Assigning its src afterwards routes through the interceptor,
// which models scripts created by other code after startup.
func (d *HTMLDocument) AppendScript() ScriptElement {
	node := &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
	d.parentForScripts().AppendChild(node)
	return d.wrap(node)
}

// InstallSrcInterceptor registers fn for subsequent src assignments.
// Installing a second interceptor is rejected so a double install cannot
// produce double side effects.
func (d *HTMLDocument) InstallSrcInterceptor(fn Interceptor) error {
	if d.interceptor != nil && fn != nil {
		return nil // already wrapped; keep the first interceptor
	}
	d.interceptor = fn
	return nil
}

// ReplaceScript swaps old for a fresh node carrying src. Attributes other
// than src and the gate's side attributes are copied over. The src is
// written directly onto the node, bypassing interception, because a
// restored element is by definition permitted.
func (d *HTMLDocument) ReplaceScript(old ScriptElement, src string) ScriptElement {
	el, ok := old.(*HTMLScript)
	if !ok || el.node.Parent == nil {
		return nil
	}

	fresh := &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
	for _, attr := range el.node.Attr {
		switch attr.Key {
		case "src", AttrBlockedSrc, AttrCategory:
			continue
		}
		fresh.Attr = append(fresh.Attr, attr)
	}
	fresh.Attr = append(fresh.Attr, html.Attribute{Key: "src", Val: src})

	parent := el.node.Parent
	parent.InsertBefore(fresh, el.node)
	parent.RemoveChild(el.node)
	delete(d.wrappers, el.node)

	return d.wrap(fresh)
}

func (d *HTMLDocument) wrap(node *html.Node) *HTMLScript {
	if el, ok := d.wrappers[node]; ok {
		return el
	}
	el := &HTMLScript{doc: d, node: node}
	d.wrappers[node] = el
	return el
}

func (d *HTMLDocument) parentForScripts() *html.Node {
	var body *html.Node
	walk(d.root, func(n *html.Node) {
		if body == nil && n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
		}
	})
	if body != nil {
		return body
	}
	return d.root
}

// HTMLScript is a ScriptElement over one script node.
type HTMLScript struct {
	doc  *HTMLDocument
	node *html.Node
}

// Attr returns the attribute value and whether it is present.
func (s *HTMLScript) Attr(name string) (string, bool) {
	for _, attr := range s.node.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute. A src assignment consults the document's
// interceptor first; a captured assignment is not applied.
func (s *HTMLScript) SetAttr(name, value string) {
	if name == "src" && s.doc.interceptor != nil {
		if !s.doc.interceptor(s, value) {
			return
		}
	}
	for i := range s.node.Attr {
		if s.node.Attr[i].Key == name {
			s.node.Attr[i].Val = value
			return
		}
	}
	s.node.Attr = append(s.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the attribute if present.
func (s *HTMLScript) RemoveAttr(name string) {
	for i := range s.node.Attr {
		if s.node.Attr[i].Key == name {
			s.node.Attr = append(s.node.Attr[:i], s.node.Attr[i+1:]...)
			return
		}
	}
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
