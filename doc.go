/*
Package listui provides an immediate-mode list widget bound to a
dynamically-typed value store.

# Overview

An App owns a ValueStore, a set of ListInterfaces and one RenderGroup per
list. Every frame the layout pass turns list state into text labels and
colored unit-square instances; nothing is retained between frames except
the values, the cursors and the focus stack. Values are shared: any number
of entries may display or edit the same Handle.

# Quick Start

	renderer, _ := opengl.NewRenderer(640, 480)
	app := listui.New(renderer, listui.WithExtent(640, 480))

	store := app.Store()
	t := store.Insert("time", listui.Float64(0))

	id, _ := app.NewList()
	app.List(id).AddLabeledValue("time", t)

	for !window.ShouldClose() {
	    glfw.PollEvents()
	    app.Frame(queue.Drain(), dt, func(s *listui.ValueStore) {
	        listui.Update(s, t, func(v float64) float64 { return v + 0.01 })
	    })
	    window.SwapBuffers()
	}

# Events

Backends translate their native input into Events:

	Up / Down     move the cursor of the focused list, wrapping at the ends
	Activate      toggle a checkbox, step a slider, press a button, open a sub-list
	Left / Right  step a slider down or up, set a checkbox off or on
	Cancel        close the innermost open sub-list
	Resize        new framebuffer size; pixel-anchored instances are re-derived
	Quit          ends the frame loop

Up, Down, Left and Right are rate limited by a cooldown (DefaultCooldown
unless set with WithCooldown).

# Layout

Rows are RowHeight pixels tall. Each entry produces a "label: " text and a
value text, formatted with two decimals when the value reads as a number.
A list produces one background rectangle spanning the widest row and one
inset rectangle per entry, colored by the entry's ItemState.

# Themes

ListStyle colors can be loaded from TOML:

	background = "#030303ff"

	[selected]
	fg = "#ffffff"
	bg = "#0f0f0f"

Unknown keys are rejected.
*/
package listui
