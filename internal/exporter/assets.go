package exporter

// stylesheet is inlined into every exported page.
const stylesheet = `
:root{color-scheme:dark;--bg:#0d0f17;--fg:#e9ecff;--muted:rgba(233,236,255,.65);--line:rgba(255,255,255,.12);--card:rgba(255,255,255,.04);--accent:#5f8787}
*{box-sizing:border-box}
body{margin:0;font:15px/1.45 system-ui,sans-serif;background:var(--bg);color:var(--fg);padding:24px}
body:has(.modal:target){overflow:hidden}
a{color:inherit}
.top{display:flex;gap:12px;align-items:center;flex-wrap:wrap}
.pageTitle{margin:0 auto 0 0;font-size:22px}
.search input{background:var(--card);border:1px solid var(--line);color:var(--fg);border-radius:12px;padding:8px 12px;min-width:240px}
.toggle{border:1px solid var(--line);border-radius:12px;padding:8px 12px;text-decoration:none}
.status,.suggest{color:var(--muted)}
.section{margin:28px 0}
.sectionHead{display:flex;justify-content:space-between;align-items:end;margin-bottom:12px}
.sectionName{font-weight:600;font-size:18px}
.sectionDesc,.sectionMeta,.cardNote{color:var(--muted)}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:14px}
.card{display:block;text-decoration:none;border:1px solid var(--line);border-radius:16px;background:var(--card);overflow:hidden;cursor:pointer}
.card:focus{outline:2px solid var(--accent)}
.thumb{position:relative;aspect-ratio:16/10;background:rgba(255,255,255,.03)}
.thumb img,.thumb video{width:100%;height:100%;object-fit:cover;display:block}
.badge{position:absolute;top:8px;left:8px;z-index:2;font-size:12px;padding:2px 8px;border-radius:999px;background:rgba(0,0,0,.55)}
.play{position:absolute;inset:0;display:grid;place-items:center;z-index:1;font-size:28px;pointer-events:none}
.body{padding:10px 12px}
.cardTitle{font-weight:600}
.tags{display:flex;flex-wrap:wrap;gap:6px;margin-top:6px}
.tag{font-size:12px;border:1px solid var(--line);border-radius:999px;padding:1px 8px}
body.compact .grid{grid-template-columns:repeat(auto-fill,minmax(150px,1fr));gap:8px}
body.compact .cardNote,body.compact .tags{display:none}
.modal{display:none;position:fixed;inset:0;background:rgba(0,0,0,.7);padding:24px;overflow:auto;z-index:10}
.modal:target{display:grid;place-items:center}
.modalCard{background:var(--bg);border:1px solid var(--line);border-radius:20px;padding:16px;max-width:960px;width:100%}
.modalHead{display:flex;justify-content:space-between;align-items:center;margin-bottom:12px}
.modalTitle{font-weight:600;font-size:18px}
.modalX,.modalClose{text-decoration:none;border:1px solid var(--line);border-radius:10px;padding:4px 10px}
.modalBody img,.modalBody video,.modalBody iframe{width:100%;max-height:70vh;border:0;border-radius:14px}
.modalBody iframe{aspect-ratio:16/9;height:auto}
.mediaNotice{color:var(--muted);padding:14px;border:1px solid var(--line);border-radius:16px;background:var(--card)}
.modalMeta{color:var(--muted);margin:12px 0}
`

// script wires the keyboard affordances the markup cannot express:
// Space activates a focused card, Escape closes the open modal, and the
// view toggle switches density in place for static pages.
const script = `
(function(){
  document.querySelectorAll(".card").forEach(function(c){
    c.addEventListener("keydown",function(e){
      if(e.key===" "){e.preventDefault();c.click();}
    });
  });
  window.addEventListener("keydown",function(e){
    if(e.key==="Escape"&&location.hash.indexOf("#item-")===0){
      document.querySelectorAll(".modal video").forEach(function(v){v.pause();});
      location.hash="";
    }
  });
  var t=document.getElementById("toggleView");
  if(t&&t.getAttribute("href")==="#"){
    t.addEventListener("click",function(e){
      e.preventDefault();
      var on=document.body.classList.toggle("compact");
      t.textContent=on?"Normal view":"Compact view";
      t.setAttribute("aria-pressed",String(on));
    });
  }
})();
`
