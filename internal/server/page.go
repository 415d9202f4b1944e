package server

// pageTemplate hosts the chart. The SVG is server-rendered; the script only
// refetches frames while a transition runs and forwards pointer events.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>svgpie{{if .Selector}} {{.Selector}}{{end}}</title>
<style>
  body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #fafafa; }
  #container { position: relative; width: 100%; max-width: 960px; margin: 24px auto; }
  .svgpie path { cursor: pointer; stroke: #fff; stroke-width: 1px; }
  .svgpie path:hover { opacity: 0.85; }
  .svgpie text { font-size: 12px; fill: #333; pointer-events: none; }
  .svgpie .total { font-size: 20px; font-weight: 600; }
  #tooltip { position: absolute; display: none; padding: 6px 10px; background: rgba(0, 0, 0, 0.8);
    color: #fff; font-size: 12px; border-radius: 4px; pointer-events: none; white-space: nowrap; }
</style>
</head>
<body>
<div id="container">
  <div id="chart">{{.SVG}}</div>
  {{if .Tooltip}}<div id="tooltip"></div>{{end}}
</div>
<script>
(function() {
  const container = document.getElementById('container');
  const chart = document.getElementById('chart');
  const tip = document.getElementById('tooltip');
  const PADDING = 10;
  let polling = false;

  function width() { return Math.round(container.clientWidth); }

  async function refresh() {
    const resp = await fetch('/chart.svg?width=' + width());
    chart.innerHTML = await resp.text();
    return resp.headers.get('X-Svgpie-Animating') === 'true';
  }

  function poll() {
    if (polling) return;
    polling = true;
    const step = async () => {
      const animating = await refresh();
      if (animating) {
        requestAnimationFrame(step);
      } else {
        polling = false;
      }
    };
    step();
  }

  async function pointer(body) {
    if (!tip) return;
    const resp = await fetch('/api/pointer', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body),
    });
    const state = await resp.json();
    if (!state.visible) {
      tip.style.display = 'none';
      return;
    }
    tip.textContent = state.label + ': ' + state.text;
    tip.style.display = 'block';
    tip.style.left = state.left + 'px';
    tip.style.top = state.top + 'px';
  }

  chart.addEventListener('mouseover', (e) => {
    const label = e.target.getAttribute && e.target.getAttribute('data-label');
    if (label !== null && label !== undefined) pointer({event: 'enter', label: label});
  });
  chart.addEventListener('mousemove', (e) => {
    if (!tip || tip.style.display === 'none') return;
    const rect = container.getBoundingClientRect();
    pointer({
      event: 'move',
      x: e.clientX - rect.left,
      y: e.clientY - rect.top,
      box: {width: tip.offsetWidth, height: tip.offsetHeight},
      padding: PADDING,
    });
  });
  chart.addEventListener('mouseout', (e) => {
    if (e.target.getAttribute && e.target.getAttribute('data-label') !== null) pointer({event: 'leave'});
  });

  let resizeTimer;
  window.addEventListener('resize', () => {
    clearTimeout(resizeTimer);
    resizeTimer = setTimeout(refresh, 100);
  });

  refresh().then((animating) => { if (animating) poll(); });
  setInterval(poll, 2000);
})();
</script>
</body>
</html>
`
