// Package js holds the scripts htmlshot runs inside the page.
package js

// Function definition
type Function struct {
	Name       string
	Definition string
}

// ReadyState of the document
var ReadyState = &Function{
	Name:       "readyState",
	Definition: `() => document.readyState`,
}

// InnerText of the element the function is called on
var InnerText = &Function{
	Name:       "innerText",
	Definition: `function() { return this.innerText === undefined ? this.textContent : this.innerText }`,
}

// WaitStable resolves after the fonts, the stylesheets and the images are loaded and the DOM
// has been quiet for quietMs, then two animation frames are painted. It gives up waiting
// for the resources after timeoutMs.
var WaitStable = &Function{
	Name: "waitStable",
	Definition: `async (timeoutMs, quietMs) => {
	const deadline = Date.now() + timeoutMs
	const sleep = (ms) => new Promise((r) => setTimeout(r, ms))
	const left = () => Math.max(0, deadline - Date.now())

	while (document.readyState !== 'complete' && left() > 0) await sleep(100)

	if (document.fonts && document.fonts.ready) {
		await Promise.race([document.fonts.ready, sleep(left())])
	}

	const loaded = () =>
		Array.from(document.querySelectorAll('link[rel="stylesheet"]')).every((l) => l.sheet) &&
		Array.from(document.images).every((img) => img.complete)
	while (!loaded() && left() > 0) await sleep(100)

	await new Promise((resolve) => {
		let timer
		const observer = new MutationObserver(() => {
			clearTimeout(timer)
			timer = setTimeout(done, quietMs)
		})
		function done() {
			observer.disconnect()
			resolve()
		}
		observer.observe(document, { childList: true, subtree: true, attributes: true, characterData: true })
		timer = setTimeout(done, quietMs)
		setTimeout(done, left() + quietMs)
	})

	await new Promise((r) => requestAnimationFrame(() => requestAnimationFrame(r)))
	return 'stable'
}`,
}
